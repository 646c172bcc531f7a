package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jefefefef/Paperplay/internal/domain"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	libraryRepo "github.com/jefefefef/Paperplay/internal/domain/repositories/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
	"github.com/jefefefef/Paperplay/internal/repository/sqlite"
	"github.com/jefefefef/Paperplay/internal/search"
)

// stubThumbnailer returns a fixed preview derived from the filename, so
// tests never depend on real image decoding
type stubThumbnailer struct{}

func (stubThumbnailer) Generate(filename string, content []byte) models.Thumbnail {
	return models.Thumbnail{Kind: models.KindOther, PNG: []byte("thumb:" + filename)}
}

// failingDocumentRepo fails every call with the configured error
type failingDocumentRepo struct{ err error }

func (r *failingDocumentRepo) Put(ctx context.Context, doc *models.Document) error {
	return r.err
}

func (r *failingDocumentRepo) GetAll(ctx context.Context) ([]models.Document, error) {
	return nil, r.err
}

// flakyDocumentRepo rejects documents with a specific name and delegates
// the rest, for partial-failure scenarios
type flakyDocumentRepo struct {
	inner    libraryRepo.DocumentRepository
	failName string
}

func (r *flakyDocumentRepo) Put(ctx context.Context, doc *models.Document) error {
	if doc.Name == r.failName {
		return &domain.StorageError{Table: "documents", Op: "put", Err: fmt.Errorf("disk on fire")}
	}
	return r.inner.Put(ctx, doc)
}

func (r *flakyDocumentRepo) GetAll(ctx context.Context) ([]models.Document, error) {
	return r.inner.GetAll(ctx)
}

// failingCollectionRepo fails writes but serves reads from the inner repo
type failingCollectionRepo struct {
	inner libraryRepo.CollectionRepository
	err   error
}

func (r *failingCollectionRepo) Put(ctx context.Context, collection *models.Collection) error {
	return r.err
}

func (r *failingCollectionRepo) GetAll(ctx context.Context) ([]models.Collection, error) {
	return r.inner.GetAll(ctx)
}

// countingCollectionRepo counts writes going through to the inner repo
type countingCollectionRepo struct {
	libraryRepo.CollectionRepository
	puts int
}

func (r *countingCollectionRepo) Put(ctx context.Context, collection *models.Collection) error {
	r.puts++
	return r.CollectionRepository.Put(ctx, collection)
}

type testEnv struct {
	coordinator    librarySvc.Coordinator
	docRepo        libraryRepo.DocumentRepository
	collectionRepo libraryRepo.CollectionRepository
	index          *search.Index
	repoConfig     *sqlite.RepositoryConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tables := sqlite.NewTableNames("test_")
	require.NoError(t, sqlite.EnsureSchema(db, tables))

	repoConfig := &sqlite.RepositoryConfig{
		DB:     db,
		Tables: tables,
		Logger: slog.New(slog.DiscardHandler),
	}

	env := &testEnv{
		docRepo:        sqlite.NewDocumentRepository(repoConfig),
		collectionRepo: sqlite.NewCollectionRepository(repoConfig),
		index:          search.NewIndex(),
		repoConfig:     repoConfig,
	}
	env.coordinator = NewService(
		env.docRepo,
		env.collectionRepo,
		stubThumbnailer{},
		env.index,
		slog.New(slog.DiscardHandler),
	)
	return env
}

func uploadFile(name, content string) librarySvc.UploadedFile {
	return librarySvc.UploadedFile{Filename: name, Content: strings.NewReader(content)}
}

func TestInitialize_EmptyStoreSynthesizesAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.coordinator.Initialize(ctx))

	collections := env.coordinator.Collections()
	require.Len(t, collections, 1)
	assert.Equal(t, models.AllCollectionID, collections[0].ID)
	assert.Empty(t, collections[0].DocumentIDs)
	assert.Equal(t, models.AllCollectionID, env.coordinator.ActiveCollectionID())

	// Synthesized membership is not written back to storage
	stored, err := env.collectionRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestInitialize_SynthesizesAllEvenWhenOtherCollectionsExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.collectionRepo.Put(ctx, &models.Collection{ID: "col-taxes", Name: "Taxes"}))

	require.NoError(t, env.coordinator.Initialize(ctx))

	collections := env.coordinator.Collections()
	require.Len(t, collections, 2)
	assert.Equal(t, models.AllCollectionID, collections[0].ID, "synthesized all heads the list")
	assert.Equal(t, "col-taxes", collections[1].ID)
	assert.Equal(t, models.AllCollectionID, env.coordinator.ActiveCollectionID())
}

func TestInitialize_StorageFault(t *testing.T) {
	env := newTestEnv(t)
	broken := NewService(
		&failingDocumentRepo{err: &domain.StorageError{Table: "documents", Op: "getAll", Err: fmt.Errorf("locked")}},
		env.collectionRepo,
		stubThumbnailer{},
		search.NewIndex(),
		slog.New(slog.DiscardHandler),
	)

	err := broken.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInitialization)

	// The coordinator still serves an empty state
	assert.Empty(t, broken.Query("", ""))
	assert.Empty(t, broken.Collections())
	assert.Equal(t, "", broken.ActiveCollectionID())
}

func TestUploadDocuments_CreatesPersistsAndIndexes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("widget-report.pdf", "pdf bytes"),
		uploadFile("other.txt", "text bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.TotalFiles)
	assert.Equal(t, 2, result.Summary.Stored)
	assert.Equal(t, 0, result.Summary.Failed)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, "widget-report.pdf", result.Outcomes[0].Filename)
	assert.NotEmpty(t, result.Outcomes[0].DocumentID)
	assert.NotEmpty(t, result.Outcomes[1].DocumentID)
	assert.NotEqual(t, result.Outcomes[0].DocumentID, result.Outcomes[1].DocumentID)

	// Names have their extension stripped
	docs := env.coordinator.Query("", "")
	require.Len(t, docs, 2)
	assert.Equal(t, "widget-report", docs[0].Name)
	assert.Equal(t, "other", docs[1].Name)

	// Persisted 1:1
	stored, err := env.docRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	// Indexed 1:1
	found := env.coordinator.Query("", "widget")
	require.Len(t, found, 1)
	assert.Equal(t, result.Outcomes[0].DocumentID, found[0].ID)

	// The persisted "all" membership was refreshed to the full id set
	collections, err := env.collectionRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, models.AllCollectionID, collections[0].ID)
	assert.ElementsMatch(t,
		[]string{result.Outcomes[0].DocumentID, result.Outcomes[1].DocumentID},
		collections[0].DocumentIDs,
	)
}

func TestUploadDocuments_PartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flaky := &flakyDocumentRepo{inner: env.docRepo, failName: "bad"}
	coordinator := NewService(flaky, env.collectionRepo, stubThumbnailer{}, env.index, slog.New(slog.DiscardHandler))
	require.NoError(t, coordinator.Initialize(ctx))

	result, err := coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("good.txt", "fine"),
		uploadFile("bad.txt", "doomed"),
		uploadFile("also-good.txt", "fine too"),
	})
	require.NoError(t, err, "per-file failures must not fail the batch")

	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, 2, result.Summary.Stored)
	assert.Equal(t, 1, result.Summary.Failed)

	require.Len(t, result.Outcomes, 3)
	assert.Empty(t, result.Outcomes[0].Error)
	assert.NotEmpty(t, result.Outcomes[1].Error)
	assert.Empty(t, result.Outcomes[1].DocumentID)
	assert.Empty(t, result.Outcomes[2].Error)

	// Only the stored documents reached the snapshot
	docs := coordinator.Query("", "")
	require.Len(t, docs, 2)
	assert.Equal(t, "good", docs[0].Name)
	assert.Equal(t, "also-good", docs[1].Name)
}

func TestUploadDocuments_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.TotalFiles)
	assert.Empty(t, result.Outcomes)
}

func TestCreateCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	collection, err := env.coordinator.CreateCollection(ctx, "  Taxes  ")
	require.NoError(t, err)
	require.NotNil(t, collection)
	assert.Equal(t, "Taxes", collection.Name, "name is stored trimmed")
	assert.NotEmpty(t, collection.ID)
	assert.Empty(t, collection.DocumentIDs)

	collections := env.coordinator.Collections()
	require.Len(t, collections, 2)
	assert.Equal(t, "Taxes", collections[1].Name)

	stored, err := env.collectionRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, collection.ID, stored[0].ID)
}

func TestCreateCollection_BlankNameIsSilentNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	for _, name := range []string{"", "  ", "\t\n"} {
		collection, err := env.coordinator.CreateCollection(ctx, name)
		require.NoError(t, err)
		assert.Nil(t, collection)
	}

	assert.Len(t, env.coordinator.Collections(), 1, "only the synthetic all remains")
	stored, err := env.collectionRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateCollection_StorageFaultLeavesSnapshotUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	failing := &failingCollectionRepo{
		inner: env.collectionRepo,
		err:   &domain.StorageError{Table: "collections", Op: "put", Err: fmt.Errorf("readonly")},
	}
	coordinator := NewService(env.docRepo, failing, stubThumbnailer{}, env.index, slog.New(slog.DiscardHandler))
	require.NoError(t, coordinator.Initialize(ctx))

	collection, err := coordinator.CreateCollection(ctx, "Taxes")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, collection)

	// Write-then-reflect: nothing appeared in the snapshot
	assert.Len(t, coordinator.Collections(), 1)
}

func TestAssignDocumentToCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("doc-one.txt", "1"),
		uploadFile("doc-two.txt", "2"),
	})
	require.NoError(t, err)
	docID1 := result.Outcomes[0].DocumentID
	docID2 := result.Outcomes[1].DocumentID

	taxes, err := env.coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)

	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, docID1, taxes.ID))

	membership := collectionByID(t, env.coordinator, taxes.ID).DocumentIDs
	assert.Equal(t, []string{docID1}, membership)

	// Idempotent: re-assigning changes nothing
	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, docID1, taxes.ID))
	membership = collectionByID(t, env.coordinator, taxes.ID).DocumentIDs
	assert.Equal(t, []string{docID1}, membership)

	// The change is durable
	stored, err := env.collectionRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, c := range stored {
		if c.ID == taxes.ID {
			assert.Equal(t, []string{docID1}, c.DocumentIDs)
		}
	}

	// Unknown target, unknown document: silent no-ops
	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, docID2, "no-such-collection"))
	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, "no-such-document", taxes.ID))
	assert.Equal(t, []string{docID1}, collectionByID(t, env.coordinator, taxes.ID).DocumentIDs)
}

func TestAssignToAllIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("a.txt", "a"),
		uploadFile("b.txt", "b"),
	})
	require.NoError(t, err)

	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, result.Outcomes[0].DocumentID, models.AllCollectionID))

	// "all" membership still equals the full document set
	all := collectionByID(t, env.coordinator, models.AllCollectionID)
	assert.ElementsMatch(t,
		[]string{result.Outcomes[0].DocumentID, result.Outcomes[1].DocumentID},
		all.DocumentIDs,
	)
	assert.Len(t, env.coordinator.Query(models.AllCollectionID, ""), 2)
}

func TestAssign_StorageFaultLeavesMembershipUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{uploadFile("a.txt", "a")})
	require.NoError(t, err)
	docID := result.Outcomes[0].DocumentID

	taxes, err := env.coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)

	// Swap in a failing repo after setup
	failing := &failingCollectionRepo{
		inner: env.collectionRepo,
		err:   &domain.StorageError{Table: "collections", Op: "put", Err: fmt.Errorf("readonly")},
	}
	coordinator := NewService(env.docRepo, failing, stubThumbnailer{}, search.NewIndex(), slog.New(slog.DiscardHandler))
	require.NoError(t, coordinator.Initialize(ctx))

	err = coordinator.AssignDocumentToCollection(ctx, docID, taxes.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Empty(t, collectionByID(t, coordinator, taxes.ID).DocumentIDs)
}

func TestResolveDrop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{uploadFile("a.txt", "a")})
	require.NoError(t, err)
	docID := result.Outcomes[0].DocumentID

	counting := &countingCollectionRepo{CollectionRepository: env.collectionRepo}
	coordinator := NewService(env.docRepo, counting, stubThumbnailer{}, search.NewIndex(), slog.New(slog.DiscardHandler))
	require.NoError(t, coordinator.Initialize(ctx))

	taxes, err := coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)
	putsAfterSetup := counting.puts

	// Self-drop: ignored before any delegation
	require.NoError(t, coordinator.ResolveDrop(ctx, librarySvc.DropGesture{SourceID: docID, TargetID: docID}))
	assert.Equal(t, putsAfterSetup, counting.puts)

	// Unknown target: ignored
	require.NoError(t, coordinator.ResolveDrop(ctx, librarySvc.DropGesture{SourceID: docID, TargetID: "nowhere"}))
	assert.Equal(t, putsAfterSetup, counting.puts)

	// Valid drop: delegates exactly once
	require.NoError(t, coordinator.ResolveDrop(ctx, librarySvc.DropGesture{SourceID: docID, TargetID: taxes.ID}))
	assert.Equal(t, putsAfterSetup+1, counting.puts)
	assert.Equal(t, []string{docID}, collectionByID(t, coordinator, taxes.ID).DocumentIDs)
}

func TestQuery_MembershipAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("widget-report.pdf", "w"),
		uploadFile("other.txt", "o"),
	})
	require.NoError(t, err)
	widgetID := result.Outcomes[0].DocumentID

	taxes, err := env.coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)

	// Empty collection, blank query: nothing visible
	assert.Empty(t, env.coordinator.Query(taxes.ID, ""))

	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, widgetID, taxes.ID))

	// Blank query resolves the membership set
	docs := env.coordinator.Query(taxes.ID, "")
	require.Len(t, docs, 1)
	assert.Equal(t, widgetID, docs[0].ID)

	// Search is global: the active collection does not scope it
	for _, active := range []string{"", models.AllCollectionID, taxes.ID, "unknown"} {
		found := env.coordinator.Query(active, "widget")
		require.Len(t, found, 1, "active=%q", active)
		assert.Equal(t, widgetID, found[0].ID)
	}

	// Unknown collection with a blank query yields nothing
	assert.Empty(t, env.coordinator.Query("no-such-collection", ""))
}

func TestQuery_DropsIndexEntriesThatNoLongerResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	// Poison the shared index with an id the snapshot never heard of
	env.index.Add(models.Document{ID: "ghost", Name: "phantom menace"})

	assert.Empty(t, env.coordinator.Query("", "phantom"))
}

func TestStateSurvivesRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	// Two separate uploads so creation timestamps order the documents
	first, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{uploadFile("first.txt", "1")})
	require.NoError(t, err)
	second, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{uploadFile("second.txt", "2")})
	require.NoError(t, err)

	taxes, err := env.coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)
	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, first.Outcomes[0].DocumentID, taxes.ID))

	// A fresh coordinator over the same database sees the same state
	restarted := NewService(env.docRepo, env.collectionRepo, stubThumbnailer{}, search.NewIndex(), slog.New(slog.DiscardHandler))
	require.NoError(t, restarted.Initialize(ctx))

	docs := restarted.Query(models.AllCollectionID, "")
	require.Len(t, docs, 2)
	assert.Equal(t, first.Outcomes[0].DocumentID, docs[0].ID)
	assert.Equal(t, second.Outcomes[0].DocumentID, docs[1].ID)

	membership := collectionByID(t, restarted, taxes.ID).DocumentIDs
	assert.Equal(t, []string{first.Outcomes[0].DocumentID}, membership)

	found := restarted.Query("", "second")
	require.Len(t, found, 1)
	assert.Equal(t, second.Outcomes[0].DocumentID, found[0].ID)
}

// Full walk through the upload / create / assign / search flow
func TestScenario_UploadAssignSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.coordinator.Initialize(ctx))

	result, err := env.coordinator.UploadDocuments(ctx, []librarySvc.UploadedFile{
		uploadFile("quarterly-budget.pdf", "q"),
		uploadFile("vacation-photo.png", "v"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Summary.Stored)
	docID1 := result.Outcomes[0].DocumentID
	docID2 := result.Outcomes[1].DocumentID
	require.NotEqual(t, docID1, docID2)

	all := collectionByID(t, env.coordinator, models.AllCollectionID)
	assert.ElementsMatch(t, []string{docID1, docID2}, all.DocumentIDs)

	taxes, err := env.coordinator.CreateCollection(ctx, "Taxes")
	require.NoError(t, err)
	assert.Empty(t, collectionByID(t, env.coordinator, taxes.ID).DocumentIDs)

	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, docID1, taxes.ID))
	assert.Equal(t, []string{docID1}, collectionByID(t, env.coordinator, taxes.ID).DocumentIDs)

	require.NoError(t, env.coordinator.AssignDocumentToCollection(ctx, docID1, taxes.ID))
	assert.Equal(t, []string{docID1}, collectionByID(t, env.coordinator, taxes.ID).DocumentIDs)

	found := env.coordinator.Query(taxes.ID, "vacation")
	require.Len(t, found, 1)
	assert.Equal(t, docID2, found[0].ID)
}

func collectionByID(t *testing.T, coordinator librarySvc.Coordinator, id string) models.Collection {
	t.Helper()
	for _, c := range coordinator.Collections() {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("collection %s not found", id)
	return models.Collection{}
}
