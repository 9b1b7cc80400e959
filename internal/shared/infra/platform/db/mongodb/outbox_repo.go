package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/davicafu/wfstatus/internal/shared/domain"
)

// OutboxRepoMongoDB implementa la interfaz sharedDomain.OutboxRepository.
type OutboxRepoMongoDB struct {
	outboxColl *mongo.Collection
}

func NewOutboxRepoMongoDB(client *mongo.Client, dbName string) *OutboxRepoMongoDB {
	outboxColl := client.Database(dbName).Collection("outbox")
	return &OutboxRepoMongoDB{outboxColl: outboxColl}
}

// mongoOutboxEvent mapea los documentos de la colección. El id se guarda como string.
type mongoOutboxEvent struct {
	ID            string    `bson:"_id"`
	AggregateType string    `bson:"aggregateType"`
	AggregateID   string    `bson:"aggregateId"`
	EventType     string    `bson:"eventType"`
	Exchange      string    `bson:"exchange"`
	Payload       string    `bson:"payload"`
	CreatedAt     time.Time `bson:"createdAt"`
	Processed     bool      `bson:"processed"`
}

// InitIndexes crea el índice usado por FetchPendingOutbox.
func (r *OutboxRepoMongoDB) InitIndexes(ctx context.Context) error {
	_, err := r.outboxColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "processed", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}

func (r *OutboxRepoMongoDB) SaveOutbox(ctx context.Context, evt sharedDomain.OutboxEvent) error {
	if _, err := r.outboxColl.InsertOne(ctx, toMongoOutboxEvent(evt)); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// FetchPendingOutbox obtiene los eventos no procesados de la colección outbox.
func (r *OutboxRepoMongoDB) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	filter := bson.M{"processed": false}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))

	cursor, err := r.outboxColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []sharedDomain.OutboxEvent
	for cursor.Next(ctx) {
		var mo mongoOutboxEvent
		if err := cursor.Decode(&mo); err != nil {
			return nil, err
		}
		evt, err := fromMongoOutboxEvent(&mo)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, cursor.Err()
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepoMongoDB) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	filter := bson.M{"_id": id.String()}
	update := bson.M{"$set": bson.M{"processed": true}}

	res, err := r.outboxColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}

	return nil
}

func toMongoOutboxEvent(evt sharedDomain.OutboxEvent) mongoOutboxEvent {
	return mongoOutboxEvent{
		ID:            evt.ID.String(),
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.EventType,
		Exchange:      evt.Exchange,
		Payload:       evt.Payload,
		CreatedAt:     evt.CreatedAt,
		Processed:     evt.Processed,
	}
}

func fromMongoOutboxEvent(mo *mongoOutboxEvent) (sharedDomain.OutboxEvent, error) {
	id, err := uuid.Parse(mo.ID)
	if err != nil {
		return sharedDomain.OutboxEvent{}, fmt.Errorf("invalid UUID in outbox document: %w", err)
	}
	return sharedDomain.OutboxEvent{
		ID:            id,
		AggregateType: mo.AggregateType,
		AggregateID:   mo.AggregateID,
		EventType:     mo.EventType,
		Exchange:      mo.Exchange,
		Payload:       mo.Payload,
		CreatedAt:     mo.CreatedAt,
		Processed:     mo.Processed,
	}, nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepoMongoDB)(nil)
