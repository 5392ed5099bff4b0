package container

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	IngestService *services.IngestService
	QueryService  *services.QueryService
	ListService   *services.ListService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	dbName string,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient, dbName)
	ingestService := services.NewIngestService(repo, repo, repo)
	queryService := services.NewQueryService(repo, repo, repo)
	listService := services.NewListService(repo)

	return &Container{
		Logger:        logger,
		MongoDBClient: mongoDBClient,
		IngestService: ingestService,
		QueryService:  queryService,
		ListService:   listService,
	}
}
