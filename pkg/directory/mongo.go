package directory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Mongo defaults.
const (
	DefaultDatabase   = "orgchart"
	DefaultCollection = "employees"
)

// EmployeeIndexes are created by [MongoSource.EnsureIndexes].
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("idx_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "manager_id", Value: 1}},
		Options: options.Index().SetName("idx_manager_id"),
	},
}

// MongoSource reads employees from a MongoDB collection. Documents use the
// bson tags of [org.Employee]; directory order is insertion order.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo connects to uri and returns a source over database.collection.
// Empty names fall back to DefaultDatabase and DefaultCollection.
func DialMongo(ctx context.Context, uri, database, collection string) (*MongoSource, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo directory source needs a uri")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return NewMongoSource(client, database, collection), nil
}

// NewMongoSource wraps an existing client.
func NewMongoSource(client *mongo.Client, database, collection string) *MongoSource {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoSource{client: client, coll: client.Database(database).Collection(collection)}
}

func (s *MongoSource) Employees(ctx context.Context) ([]org.Employee, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find employees")
	}
	defer cur.Close(ctx)

	emps := []org.Employee{}
	if err := cur.All(ctx, &emps); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return emps, nil
}

// Replace swaps the collection contents for emps, in order.
func (s *MongoSource) Replace(ctx context.Context, emps []org.Employee) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "clear employees")
	}
	if len(emps) == 0 {
		return nil
	}
	docs := make([]any, len(emps))
	for i, e := range emps {
		docs[i] = e
	}
	if _, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "insert employees")
	}
	return nil
}

// EnsureIndexes creates EmployeeIndexes if missing.
func (s *MongoSource) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, EmployeeIndexes)
	return err
}

func (s *MongoSource) Name() string {
	return KindMongo + ":" + s.coll.Database().Name() + "." + s.coll.Name()
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
