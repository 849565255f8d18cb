package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

const (
	collectionTopicos  = "topicos"
	collectionCounters = "counters"
)

// TopicoRepository persists topics with sequential int64 ids allocated from a
// counters collection, so ids are strictly increasing across the deployment.
type TopicoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewTopicoRepository(db *mongo.Database) *TopicoRepository {
	return &TopicoRepository{
		col:      db.Collection(collectionTopicos),
		counters: db.Collection(collectionCounters),
	}
}

type mongoTopico struct {
	ID            int64     `bson:"_id"`
	Titulo        string    `bson:"titulo"`
	Mensaje       string    `bson:"mensaje"`
	FechaCreacion time.Time `bson:"fecha_creacion"`
	Status        string    `bson:"status"`
	Autor         string    `bson:"autor"`
	Curso         string    `bson:"curso"`
}

func toDomain(m *mongoTopico) *domain.Topico {
	return &domain.Topico{
		ID:            m.ID,
		Titulo:        m.Titulo,
		Mensaje:       m.Mensaje,
		FechaCreacion: m.FechaCreacion.UTC(),
		Status:        domain.StatusTopico(m.Status),
		Autor:         m.Autor,
		Curso:         m.Curso,
	}
}

// Create allocates the next sequence value and inserts the topic. A failed
// insert burns a sequence value; ids stay strictly increasing either way.
func (r *TopicoRepository) Create(ctx context.Context, t *domain.Topico) (*domain.Topico, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoTopico{
		ID:            id,
		Titulo:        t.Titulo,
		Mensaje:       t.Mensaje,
		FechaCreacion: t.FechaCreacion,
		Status:        string(t.Status),
		Autor:         t.Autor,
		Curso:         t.Curso,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStorageConflict
		}
		return nil, fmt.Errorf("insert topico: %w", err)
	}

	created := *t
	created.ID = id
	return &created, nil
}

func (r *TopicoRepository) FindByID(ctx context.Context, id int64) (*domain.Topico, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoTopico
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTopicoNotFound
		}
		return nil, fmt.Errorf("find topico: %w", err)
	}
	return toDomain(&m), nil
}

// List returns one page of topics plus the total count. A secondary sort on
// _id keeps the ordering stable when the primary field ties.
func (r *TopicoRepository) List(ctx context.Context, filter ports.ListTopicosFilter) ([]*domain.Topico, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count topicos: %w", err)
	}

	dir := 1
	if filter.SortDesc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortBy, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(filter.Page) * int64(filter.Size)).
		SetLimit(int64(filter.Size))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list topicos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoTopico
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode topicos: %w", err)
	}

	topicos := make([]*domain.Topico, 0, len(docs))
	for i := range docs {
		topicos = append(topicos, toDomain(&docs[i]))
	}
	return topicos, total, nil
}

// Update applies the non-nil fields in a single atomic document update.
func (r *TopicoRepository) Update(ctx context.Context, id int64, fields ports.UpdateTopicoFields) (*domain.Topico, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if fields.Titulo != nil {
		set["titulo"] = *fields.Titulo
	}
	if fields.Mensaje != nil {
		set["mensaje"] = *fields.Mensaje
	}
	if fields.Autor != nil {
		set["autor"] = *fields.Autor
	}
	if fields.Curso != nil {
		set["curso"] = *fields.Curso
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoTopico
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTopicoNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStorageConflict
		}
		return nil, fmt.Errorf("update topico: %w", err)
	}
	return toDomain(&m), nil
}

func (r *TopicoRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete topico: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTopicoNotFound
	}
	return nil
}

func (r *TopicoRepository) ExistsByTituloAndMensaje(ctx context.Context, titulo, mensaje string) (bool, error) {
	return r.exists(ctx, bson.M{"titulo": titulo, "mensaje": mensaje})
}

func (r *TopicoRepository) ExistsByTituloAndMensajeExcluding(ctx context.Context, titulo, mensaje string, id int64) (bool, error) {
	return r.exists(ctx, bson.M{"titulo": titulo, "mensaje": mensaje, "_id": bson.M{"$ne": id}})
}

func (r *TopicoRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("exists topico: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique compound index that is the authoritative
// enforcement of the (titulo, mensaje) uniqueness rule.
func (r *TopicoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys: bson.D{{Key: "titulo", Value: 1}, {Key: "mensaje", Value: 1}},
		Options: options.Index().
			SetName("uk_topicos_titulo_mensaje").
			SetUnique(true),
	}

	_, err := r.col.Indexes().CreateOne(ctx, index)
	return err
}

// nextID atomically increments and returns the topicos sequence counter.
func (r *TopicoRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": collectionTopicos},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next topico id: %w", err)
	}
	return counter.Seq, nil
}
