package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections gérées par le service
const (
	TriageHistoryCollection = "triage_history"
)

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureTriageHistoryCollection crée la collection d'historique des patients traités
// si elle n'existe pas, avec son schéma de validation et ses index
func (cm *CollectionManager) EnsureTriageHistoryCollection(ctx context.Context) error {
	names, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, name := range names {
		if name == TriageHistoryCollection {
			return nil
		}
	}

	// Schéma de validation pour les entrées archivées
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"patient_id", "department", "risk_level", "arrival_time", "archived_at"},
			"properties": bson.M{
				"patient_id": bson.M{
					"bsonType":    "string",
					"description": "Identifiant unique du patient dans la file",
				},
				"department": bson.M{
					"bsonType":    "string",
					"description": "Service de destination",
				},
				"risk_level": bson.M{
					"bsonType":    "string",
					"enum":        []string{"Low", "Medium", "High"},
					"description": "Niveau de risque au moment de l'évaluation",
				},
				"arrival_mode": bson.M{
					"bsonType":    "string",
					"description": "Mode d'arrivée (Ambulance, Wheelchair, Walk-in)",
				},
				"final_status": bson.M{
					"bsonType":    "string",
					"description": "Statut final (completed, removed)",
				},
				"arrival_time": bson.M{
					"bsonType":    "date",
					"description": "Heure d'arrivée dans la file",
				},
				"archived_at": bson.M{
					"bsonType":    "date",
					"description": "Heure d'archivage",
				},
				"wait_minutes": bson.M{
					"bsonType":    "double",
					"description": "Temps d'attente total en minutes",
				},
				"vitals": bson.M{
					"bsonType":    "object",
					"description": "Instantané des constantes à l'évaluation",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, TriageHistoryCollection, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", TriageHistoryCollection, err)
	}

	// Index pour les consultations d'historique par patient et par service
	if err := cm.client.CreateIndex(ctx, TriageHistoryCollection,
		bson.D{{Key: "patient_id", Value: 1}},
		options.Index().SetUnique(false)); err != nil {
		return err
	}

	return cm.client.CreateIndex(ctx, TriageHistoryCollection,
		bson.D{{Key: "department", Value: 1}, {Key: "archived_at", Value: -1}},
		options.Index().SetUnique(false))
}
