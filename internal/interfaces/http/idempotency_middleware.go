package http

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// HeaderIdempotencyKey cabecera que identifica un reintento de la misma operación.
const HeaderIdempotencyKey = "Idempotency-Key"

// DefaultIdempotencyTTL tiempo que se conserva una respuesta para repetirla.
const DefaultIdempotencyTTL = 24 * time.Hour

// Resultados registrados en la métrica de idempotencia.
const (
	idemStored   = "stored"
	idemReplayed = "replayed"
	idemConflict = "conflict"
	idemMissing  = "missing_key"
)

// IdempotencyStore almacén de respuestas (Redis). Get devuelve redis.Nil si la clave no existe.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
}

// IdempotencyMetrics contador por resultado.
type IdempotencyMetrics interface {
	IncIdempotency(outcome string)
}

type idempotencyRecord struct {
	Status      int               `json:"status"`
	Body        string            `json:"body"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency repite la respuesta guardada cuando llega de nuevo la misma Idempotency-Key
// con el mismo cuerpo. Misma clave con otro cuerpo: 409. Sin store el middleware no hace nada.
// Solo se guardan respuestas sin error de servidor (status < 500).
func Idempotency(store IdempotencyStore, ttl time.Duration, log *logger.Logger, m IdempotencyMetrics) fiber.Handler {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	count := func(outcome string) {
		if m != nil {
			m.IncIdempotency(outcome)
		}
	}
	return func(c *fiber.Ctx) error {
		if store == nil {
			return c.Next()
		}
		idempotencyKey := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if idempotencyKey == "" {
			count(idemMissing)
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_KEY_REQUIRED", Message: "cabecera Idempotency-Key requerida"})
		}

		requestHash := hashBody(c.Body())
		key := store.IdempotencyKey(idempotencyScope(c), idempotencyKey)

		stored, err := store.Get(c.Context(), key)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("key", key).Msg("consultar idempotencia")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la idempotencia"})
		}
		if stored != "" {
			var record idempotencyRecord
			if err := json.Unmarshal([]byte(stored), &record); err != nil {
				log.Error().Err(err).Str("key", key).Msg("decodificar registro de idempotencia")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "registro de idempotencia corrupto"})
			}
			if record.RequestHash != requestHash {
				count(idemConflict)
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_CONFLICT", Message: "Idempotency-Key reutilizada con otro cuerpo"})
			}
			count(idemReplayed)
			return writeStoredResponse(c, &record)
		}

		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			return nil
		}
		record := idempotencyRecord{
			Status:      status,
			Body:        base64.StdEncoding.EncodeToString(c.Response().Body()),
			RequestHash: requestHash,
		}
		if ct := string(c.Response().Header.ContentType()); ct != "" {
			record.Headers = map[string]string{fiber.HeaderContentType: ct}
		}
		payload, err := json.Marshal(record)
		if err != nil {
			log.Error().Err(err).Msg("serializar registro de idempotencia")
			return nil
		}
		if _, err := store.SetNX(c.Context(), key, string(payload), ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("guardar registro de idempotencia")
			return nil
		}
		count(idemStored)
		return nil
	}
}

func idempotencyScope(c *fiber.Ctx) string {
	return strings.Join([]string{GetUserID(c), c.Method(), c.Path()}, "|")
}

func writeStoredResponse(c *fiber.Ctx, record *idempotencyRecord) error {
	if ct, ok := record.Headers[fiber.HeaderContentType]; ok && ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	body, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		return c.SendStatus(record.Status)
	}
	return c.Status(record.Status).Send(body)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
