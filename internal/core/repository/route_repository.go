package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pettrack/internal/core/model"
)

// RouteRepository archives finalized routes handed off by the core. The core
// never reads the archive on its own behalf; listing is for external
// consumers (dashboards, diagnostics).
type RouteRepository interface {
	Save(route *model.FinalizedRoute) error
	FindByTrackerID(trackerID string) ([]*model.FinalizedRoute, error)
	FindBySessionID(sessionID string) (*model.FinalizedRoute, error)
}

type MongoRouteRepository struct {
	collection *mongo.Collection
}

func NewMongoRouteRepository(db *mongo.Database) *MongoRouteRepository {
	return &MongoRouteRepository{
		collection: db.Collection("routes"),
	}
}

func (r *MongoRouteRepository) Save(route *model.FinalizedRoute) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, route)
	return err
}

func (r *MongoRouteRepository) FindByTrackerID(trackerID string) ([]*model.FinalizedRoute, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"startTime": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"trackerId": trackerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routes []*model.FinalizedRoute
	if err = cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *MongoRouteRepository) FindBySessionID(sessionID string) (*model.FinalizedRoute, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var route model.FinalizedRoute
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&route)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}
