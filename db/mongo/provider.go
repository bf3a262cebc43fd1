package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/techipro/konnect-admin/db"
	"github.com/techipro/konnect-admin/env"
)

const (
	duplicateError = 11000
	settingsID     = "platform"
)

// DefaultDatabaseName is used when SANDBOX_MONGO_DB is unset
const DefaultDatabaseName = "konnect_sandbox"

// Provider is a MongoDB implementation of db.Provider.
// Documents use the driver's default field naming (lowercased Go field names).
type Provider struct {
	connectionURI string
	databaseName  string
	client        *mongo.Client
	logger        zerolog.Logger
	now           func() time.Time
}

// Ensure Provider implements db.Provider and db.Connector
var (
	_ db.Provider  = (*Provider)(nil)
	_ db.Connector = (*Provider)(nil)
)

// NewProvider creates a provider for the given connection URI and database
func NewProvider(connectionURI string, databaseName string, logger zerolog.Logger) *Provider {
	return &Provider{
		connectionURI: connectionURI,
		databaseName:  databaseName,
		logger:        logger,
		now:           time.Now,
	}
}

// NewProviderFromEnv creates a provider from SANDBOX_MONGO_URI and SANDBOX_MONGO_DB.
// The returned error satisfies env.IsMissing when no URI is configured.
func NewProviderFromEnv(logger zerolog.Logger) (*Provider, error) {
	uri, err := env.GetEnv("sandbox MongoDB URI", "SANDBOX_MONGO_URI")
	if err != nil {
		return nil, err
	}

	name := env.GetEnvOr("SANDBOX_MONGO_DB", DefaultDatabaseName)
	return NewProvider(uri, name, logger), nil
}

// Connect dials and pings the database, then creates the indices
func (p *Provider) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.connectionURI))
	if err != nil {
		return errors.Wrap(err, "connect to MongoDB")
	}

	if err := p.ping(ctx, client); err != nil {
		return err
	}

	p.client = client

	// Initialize any collections/indices
	return p.initialize(ctx)
}

// ping checks the primary, closing the client again if it cannot be reached
func (p *Provider) ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		if disconnectErr := client.Disconnect(ctx); disconnectErr != nil {
			p.logger.Warn().Err(disconnectErr).Msg("error closing unreachable MongoDB client")
		}
		return errors.Wrap(err, "ping MongoDB")
	}

	return nil
}

// Disconnect closes the client
func (p *Provider) Disconnect(ctx context.Context) error {
	if p.client == nil {
		return nil
	}

	return p.client.Disconnect(ctx)
}

// Create anything needed for the database,
// like indices
func (p *Provider) initialize(ctx context.Context) error {
	p.logger.Info().Str("database", p.databaseName).Msg("initializing the MongoDB database")

	collections := []*mongo.Collection{
		p.users(), p.technicians(), p.categories(), p.services(), p.appointments(), p.payments(),
	}
	for _, collection := range collections {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.M{"id": 1},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return errors.Wrapf(err, "create id index on %s", collection.Name())
		}
	}

	return nil
}

// SeedFrom copies every record of src into the database when it holds no users yet.
// It reports whether anything was copied.
func (p *Provider) SeedFrom(ctx context.Context, src db.Provider) (bool, error) {
	count, err := p.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	users, err := src.GetAllUsers(ctx)
	if err != nil {
		return false, err
	}
	technicians, err := src.GetAllTechnicians(ctx)
	if err != nil {
		return false, err
	}
	categories, err := src.GetAllCategories(ctx)
	if err != nil {
		return false, err
	}
	services, err := src.GetAllServices(ctx)
	if err != nil {
		return false, err
	}
	appointments, err := src.GetAllAppointments(ctx)
	if err != nil {
		return false, err
	}
	payments, err := src.GetAllPayments(ctx)
	if err != nil {
		return false, err
	}
	settings, err := src.GetSettings(ctx)
	if err != nil {
		return false, err
	}

	inserts := []struct {
		collection *mongo.Collection
		documents  []interface{}
	}{
		{p.users(), documents(len(users), func(i int) interface{} { return users[i] })},
		{p.technicians(), documents(len(technicians), func(i int) interface{} { return technicians[i] })},
		{p.categories(), documents(len(categories), func(i int) interface{} {
			category := categories[i]
			category.TechnicianCount = 0
			return category
		})},
		{p.services(), documents(len(services), func(i int) interface{} { return services[i] })},
		{p.appointments(), documents(len(appointments), func(i int) interface{} { return appointments[i] })},
		{p.payments(), documents(len(payments), func(i int) interface{} { return payments[i] })},
	}
	for _, insert := range inserts {
		if len(insert.documents) == 0 {
			continue
		}
		if _, err := insert.collection.InsertMany(ctx, insert.documents); err != nil {
			return false, errors.Wrapf(err, "seed %s", insert.collection.Name())
		}
	}

	if _, err := p.UpdateSettings(ctx, *settings); err != nil {
		return false, err
	}

	return true, nil
}

func documents(n int, at func(i int) interface{}) []interface{} {
	docs := make([]interface{}, n)
	for i := range docs {
		docs[i] = at(i)
	}
	return docs
}

func (p *Provider) users() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("users")
}

func (p *Provider) technicians() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("technicians")
}

func (p *Provider) categories() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("categories")
}

func (p *Provider) services() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("services")
}

func (p *Provider) appointments() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("appointments")
}

func (p *Provider) payments() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("payments")
}

func (p *Provider) settings() *mongo.Collection {
	return p.client.Database(p.databaseName).Collection("settings")
}

// findOne decodes the document with the given ID into out
func findOne(ctx context.Context, collection *mongo.Collection, kind string, id string, out interface{}) error {
	result := collection.FindOne(ctx, bson.M{"id": id})
	if result.Err() == mongo.ErrNoDocuments {
		return db.NewNotFoundError(kind, id)
	}

	return result.Decode(out)
}

// findAll decodes every document in insertion order into out
func findAll(ctx context.Context, collection *mongo.Collection, out interface{}) error {
	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return err
	}

	return cursor.All(ctx, out)
}

// setFields applies a $set update and decodes the updated document into out
func setFields(ctx context.Context, collection *mongo.Collection, kind string, id string, fields bson.M, out interface{}) error {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, after).Decode(out)
	if err == mongo.ErrNoDocuments {
		return db.NewNotFoundError(kind, id)
	}

	return err
}

func deleteOne(ctx context.Context, collection *mongo.Collection, kind string, id string) error {
	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return db.NewNotFoundError(kind, id)
	}

	return nil
}

// Detects if the given write exception is caused by (in part)
// by a duplicate key error
func isDuplicate(err error) bool {
	writeException, ok := err.(mongo.WriteException)
	if !ok {
		return false
	}

	for _, writeError := range writeException.WriteErrors {
		if writeError.Code == duplicateError {
			return true
		}
	}

	return false
}
