package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/auth"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/importer"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/repository"
	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/zoning"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BatchSize is how many services each insert statement carries. Batches are
// independent; one failing does not abort the rest.
const BatchSize = 100

// Defaults substituted when a row passed the parser with one of the two
// required fields blank.
const (
	DefaultRecipient = "Sin nombre"
	DefaultAddress   = "Dirección no especificada"
)

const zoningTypeCacheKey = "cache:service_type:zoning"

// ErrZoningTypeMissing means the systemwide zoning service type row is
// absent. That is a deployment misconfiguration, not a user error.
var ErrZoningTypeMissing = errors.New("tipo de servicio de zonas no configurado")

// BatchOutcome records one batch of a bulk import.
type BatchOutcome struct {
	Index    int    `json:"index"`
	Size     int    `json:"size"`
	Inserted bool   `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

// ImportResult is the aggregate of a bulk import. Success means at least one
// row was inserted; callers must also inspect ErrorMessage, which is
// non-empty on partial failure.
type ImportResult struct {
	Success      bool           `json:"success"`
	Count        int            `json:"count"`
	Total        int            `json:"total"`
	Batches      []BatchOutcome `json:"batches"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// BatchInserter is the narrow persistence surface the batch loop needs.
type BatchInserter interface {
	CreateBatch(ctx context.Context, services []entity.Service) error
}

// ImportService runs the spreadsheet bulk import pipeline.
type ImportService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

func NewImportService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *ImportService {
	return &ImportService{repos: repos, rdb: rdb, logger: logger}
}

// ZoneAccess reports whether the actor may run zone imports. Admin roles
// bypass the per-tenant check but the zoning service type must still exist
// systemwide.
func (s *ImportService) ZoneAccess(ctx context.Context, actor auth.Actor) (bool, error) {
	if !actor.Can(auth.CapImportServices) {
		return false, nil
	}

	zoningType, err := s.zoningType(ctx)
	if err != nil {
		return false, err
	}

	if actor.Role.IsAdmin() {
		return true, nil
	}
	if actor.ClientID == "" {
		return false, nil
	}
	return s.repos.Client.HasServiceTypeEnabled(ctx, actor.ClientID, zoningType.ID)
}

// Import parses the spreadsheet and inserts the rows as services for the
// resolved tenant. targetClientID is only honored for admin actors; cliente
// actors always import into their own tenant.
func (s *ImportService) Import(ctx context.Context, actor auth.Actor, file io.Reader, targetClientID string) (*ImportResult, error) {
	if !actor.Can(auth.CapImportServices) {
		return nil, auth.Denied("no tienes permisos para importar servicios")
	}

	clientID := actor.ClientID
	if actor.Role.IsAdmin() {
		clientID = targetClientID
		if clientID == "" {
			// Admins without an explicit target import into the first tenant.
			clients, _, err := s.repos.Client.FindAll(ctx, 1, 1, map[string]string{"active": "true"})
			if err != nil {
				s.logger.Error("tenant fallback lookup failed", zap.Error(err))
			} else if len(clients) > 0 {
				clientID = clients[0].ID
			}
		}
	}
	if clientID == "" {
		return nil, Invalid("no se pudo determinar el cliente para la importación")
	}

	zoningType, err := s.zoningType(ctx)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdmin() {
		enabled, err := s.repos.Client.HasServiceTypeEnabled(ctx, clientID, zoningType.ID)
		if err != nil {
			return nil, err
		}
		if !enabled {
			return nil, Invalid("el cliente no tiene habilitado el servicio por zonas")
		}
	}

	rows, err := importer.ParseRows(file)
	if err != nil {
		// A bad spreadsheet is user input, not an outage.
		return nil, Invalid("%s", err.Error())
	}

	numbers, err := s.repos.Service.NextServiceNumbers(ctx, len(rows))
	if err != nil {
		return nil, err
	}

	services := make([]entity.Service, 0, len(rows))
	for i, row := range rows {
		zone := zoning.Classify(row.Localidad)
		services = append(services, entity.Service{
			ID:                  uuid.New().String()[:32],
			ServiceNumber:       numbers[i],
			ClientID:            clientID,
			ServiceTypeID:       zoningType.ID,
			Status:              entity.StatusSolicitado,
			DeliveryAddress:     orDefault(row.Direccion, DefaultAddress),
			DeliveryContactName: orDefault(row.Destinatario, DefaultRecipient),
			DeliveryPhone:       row.Telefono,
			Locality:            row.Localidad,
			ZoneLabel:           &zone,
			Observations:        row.Observaciones,
		})
	}

	result := InsertInBatches(ctx, s.repos.Service, services, BatchSize)
	for _, b := range result.Batches {
		if !b.Inserted {
			s.logger.Error("import batch failed",
				zap.String("client_id", clientID),
				zap.Int("batch", b.Index),
				zap.Int("size", b.Size),
				zap.String("error", b.Error))
		}
	}
	return result, nil
}

// InsertInBatches chunks services into fixed-size batches and inserts each
// independently. A failed batch is recorded and the loop moves on.
func InsertInBatches(ctx context.Context, ins BatchInserter, services []entity.Service, batchSize int) *ImportResult {
	result := &ImportResult{Total: len(services)}

	var failures []string
	for start := 0; start < len(services); start += batchSize {
		end := start + batchSize
		if end > len(services) {
			end = len(services)
		}
		batch := services[start:end]
		index := start/batchSize + 1

		outcome := BatchOutcome{Index: index, Size: len(batch)}
		if err := ins.CreateBatch(ctx, batch); err != nil {
			outcome.Error = err.Error()
			failures = append(failures, fmt.Sprintf("lote %d: %v", index, err))
		} else {
			outcome.Inserted = true
			result.Count += len(batch)
		}
		result.Batches = append(result.Batches, outcome)
	}

	result.Success = result.Count > 0
	if len(failures) > 0 {
		result.ErrorMessage = fmt.Sprintf("algunos lotes fallaron: %s", strings.Join(failures, "; "))
	}
	return result
}

// zoningType resolves the zoning service type, caching its row in redis. Its
// absence is a misconfiguration, not a user error.
func (s *ImportService) zoningType(ctx context.Context) (*entity.ServiceType, error) {
	if s.rdb != nil {
		if id, err := s.rdb.Get(ctx, zoningTypeCacheKey).Result(); err == nil && id != "" {
			return &entity.ServiceType{ID: id, RequiresZoning: true}, nil
		}
	}

	zoningType, err := s.repos.ServiceType.FindZoning(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("zoning service type missing, bulk import unavailable")
			return nil, ErrZoningTypeMissing
		}
		return nil, err
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, zoningTypeCacheKey, zoningType.ID, 10*time.Minute)
	}
	return zoningType, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
