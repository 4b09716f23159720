package table

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/entities"
	"QR-Ordering-Backend/internal/utils/storage"
	"QR-Ordering-Backend/pkg/jwt"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 512

type (
	TableService interface {
		GetTables(ctx context.Context) ([]*domain.TableResponse, error)
		GenerateQR(ctx context.Context, tableID string) (*domain.TableQRResponse, error)
		ValidateToken(ctx context.Context, token string) (*entities.Table, error)
		GetSession(ctx context.Context, token string) (*domain.TableSessionResponse, error)
	}

	tableService struct {
		tableRepository TableRepository
		jwtService      jwt.JWTService
		s3              storage.AwsS3
		appURL          string
		now             func() time.Time
	}
)

// NewTableService accepts a nil s3; QR images are then rendered on demand
// by the client from the menu URL instead of being stored.
func NewTableService(tableRepository TableRepository, jwtService jwt.JWTService, s3 storage.AwsS3, appURL string) TableService {
	return &tableService{
		tableRepository: tableRepository,
		jwtService:      jwtService,
		s3:              s3,
		appURL:          strings.TrimRight(appURL, "/"),
		now:             time.Now,
	}
}

func (s *tableService) GetTables(ctx context.Context) ([]*domain.TableResponse, error) {
	tables, err := s.tableRepository.GetTables(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.TableResponse, 0, len(tables))
	for _, t := range tables {
		result = append(result, &domain.TableResponse{
			ID:            t.ID.String(),
			Number:        t.Number,
			Capacity:      t.Capacity,
			Status:        string(t.Status),
			HasQR:         t.QRToken != nil,
			QRImageURL:    t.QRImageURL,
			QRGeneratedAt: t.QRGeneratedAt,
		})
	}
	return result, nil
}

func (s *tableService) GenerateQR(ctx context.Context, tableID string) (*domain.TableQRResponse, error) {
	id, err := uuid.Parse(tableID)
	if err != nil {
		return nil, domain.ErrTableNotFound
	}
	table, err := s.tableRepository.GetTableByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.Status == entities.TableInactive {
		return nil, domain.ErrTableInactive
	}

	sessionID := uuid.New()
	token, err := s.jwtService.GenerateTableToken(table.ID.String(), sessionID.String())
	if err != nil {
		return nil, err
	}
	menuURL := fmt.Sprintf("%s/menu?token=%s", s.appURL, url.QueryEscape(token))

	imageURL := ""
	if s.s3 != nil {
		png, err := qrcode.Encode(menuURL, qrcode.Medium, qrImageSize)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("tables/%s/%s.png", table.ID, sessionID)
		objectKey, err := s.s3.UploadBytes(ctx, key, png, "image/png")
		if err != nil {
			log.Warnw("failed to upload table QR image", "table_id", table.ID.String(), "error", err)
		} else {
			imageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	if err := s.tableRepository.SaveQR(ctx, table.ID, token, sessionID, imageURL, s.now()); err != nil {
		return nil, err
	}
	log.Infow("table QR regenerated", "table_id", table.ID.String(), "session_id", sessionID.String())

	if s.s3 != nil && table.QRImageURL != "" && table.QRImageURL != imageURL {
		if err := s.s3.DeleteFile(ctx, s.s3.GetObjectKeyFromLink(table.QRImageURL)); err != nil {
			log.Warnw("failed to delete old table QR image", "table_id", table.ID.String(), "error", err)
		}
	}

	return &domain.TableQRResponse{
		TableID:   table.ID.String(),
		Number:    table.Number,
		SessionID: sessionID.String(),
		Token:     token,
		MenuURL:   menuURL,
		ImageURL:  imageURL,
	}, nil
}

// ValidateToken accepts a token only while it is the one stored against
// its table.
func (s *tableService) ValidateToken(ctx context.Context, token string) (*entities.Table, error) {
	if token == "" {
		return nil, domain.ErrQRTokenMissing
	}
	tableID, _, err := s.jwtService.ParseTableToken(token)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(tableID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	table, err := s.tableRepository.GetTableByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.QRToken == nil || *table.QRToken != token {
		return nil, domain.ErrQRTokenRevoked
	}
	if table.Status == entities.TableInactive {
		return nil, domain.ErrTableInactive
	}
	return table, nil
}

func (s *tableService) GetSession(ctx context.Context, token string) (*domain.TableSessionResponse, error) {
	table, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := &domain.TableSessionResponse{
		TableID:  table.ID.String(),
		Number:   table.Number,
		Capacity: table.Capacity,
	}
	if table.SessionID != nil {
		resp.SessionID = table.SessionID.String()
	}
	return resp, nil
}
