package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medtriage-core/internal/infrastructure/database/mongodb"
	"medtriage-core/internal/modules/queue/dto"
)

// HistoryService archive les entrées sorties des files dans MongoDB et
// permet la consultation du parcours d'un patient. Implémente Archiver.
type HistoryService struct {
	mongoClient *mongodb.Client
}

func NewHistoryService(mongoClient *mongodb.Client) *HistoryService {
	return &HistoryService{mongoClient: mongoClient}
}

// Archive insère une entrée dans triage_history
func (s *HistoryService) Archive(ctx context.Context, record dto.HistoryRecord) error {
	collection := s.mongoClient.Collection(mongodb.TriageHistoryCollection)

	if _, err := collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to archive history record for patient %s: %w", record.PatientID, err)
	}

	return nil
}

// ListHistory retourne le parcours archivé d'un patient, du plus récent au plus ancien
func (s *HistoryService) ListHistory(ctx context.Context, patientID string) ([]dto.HistoryRecord, error) {
	collection := s.mongoClient.Collection(mongodb.TriageHistoryCollection)

	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: -1}}).SetLimit(100)
	cursor, err := collection.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for patient %s: %w", patientID, err)
	}
	defer cursor.Close(ctx)

	records := make([]dto.HistoryRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history records: %w", err)
	}

	return records, nil
}
