package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"empire-service/internal/config"
	"empire-service/internal/repository/model"
)

const (
	databaseName        = "empire-service"
	worldCollectionName = "worlds"
)

type mongoRepository struct {
	logger *zap.SugaredLogger

	database        *mongo.Database
	worldCollection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	database := client.Database(databaseName)
	return &mongoRepository{
		logger:          logger,
		database:        database,
		worldCollection: database.Collection(worldCollectionName),
	}, nil
}

func (m *mongoRepository) GetWorld(ctx context.Context) (*model.World, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var world model.World
	err := m.worldCollection.FindOne(ctx, bson.M{"_id": model.WorldId}).Decode(&world)
	if err != nil {
		// seed an empty world on first read
		if errors.Is(err, mongo.ErrNoDocuments) {
			seeded := model.NewWorld()
			if _, err := m.worldCollection.InsertOne(ctx, seeded); err != nil {
				return nil, fmt.Errorf("failed to seed world: %w", err)
			}
			return seeded, nil
		}
		return nil, err
	}

	return &world, nil
}

func (m *mongoRepository) SaveWorld(ctx context.Context, world *model.World, expectedVersion uint64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	world.Id = model.WorldId
	world.Version = expectedVersion + 1

	result := m.worldCollection.FindOneAndReplace(ctx,
		bson.M{"_id": model.WorldId, "version": expectedVersion}, world)

	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVersionConflict
		}
		return err
	}

	return nil
}
