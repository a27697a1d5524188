package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/saskialein/plan-to-plate/internal/domain/recipe"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// MockRecipeRepository is a mock implementation of the recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) AddComment(ctx context.Context, recipeID uuid.UUID, comment recipe.Comment) error {
	args := m.Called(ctx, recipeID, comment)
	return args.Error(0)
}

// MockStorageService is a mock implementation of the object storage port
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageService) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

// MockOpenGraphFetcher is a mock implementation of the Open Graph port
type MockOpenGraphFetcher struct {
	mock.Mock
}

func (m *MockOpenGraphFetcher) Fetch(ctx context.Context, url string) (map[string]string, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockIndexService is a mock implementation of the index service
type MockIndexService struct {
	mock.Mock
}

func (m *MockIndexService) IngestDocument(ctx context.Context, cmd inbound.IngestDocumentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *MockIndexService) DeleteIngestedDocument(ctx context.Context, recipeID string) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

type serviceMocks struct {
	repo      *MockRecipeRepository
	storage   *MockStorageService
	opengraph *MockOpenGraphFetcher
	indexer   *MockIndexService
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	t.Helper()
	m := serviceMocks{
		repo:      new(MockRecipeRepository),
		storage:   new(MockStorageService),
		opengraph: new(MockOpenGraphFetcher),
		indexer:   new(MockIndexService),
	}
	svc := NewService(m.repo, m.storage, m.opengraph, m.indexer, zaptest.NewLogger(t))
	return svc, m
}

func ownedRecipe(t *testing.T, ownerID uuid.UUID) *recipe.Recipe {
	t.Helper()
	entity, err := recipe.NewRecipe("Carrot Soup", "https://recipes.example/soup", "", ownerID)
	require.NoError(t, err)
	entity.Events()
	return entity
}

func TestCreateRecipe(t *testing.T) {
	t.Run("url recipe is saved without upload", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		m.repo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.Recipe")).Return(nil)

		dto, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:   "Carrot Soup",
			URL:     "https://recipes.example/soup",
			OwnerID: owner,
		})

		require.NoError(t, err)
		assert.Equal(t, "Carrot Soup", dto.Title)
		assert.Equal(t, owner, dto.OwnerID)
		m.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.indexer.AssertNotCalled(t, "IngestDocument", mock.Anything, mock.Anything)
	})

	t.Run("file recipe uploads under the recipes prefix", func(t *testing.T) {
		svc, m := newTestService(t)
		m.storage.On("Upload", mock.Anything, "recipes/soup.pdf", []byte("pdf-bytes"), "application/pdf").
			Return("recipes/soup.pdf", nil)
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		dto, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:           "Uploaded Soup",
			FileName:        "soup.pdf",
			FileData:        []byte("pdf-bytes"),
			FileContentType: "application/pdf",
			OwnerID:         uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "recipes/soup.pdf", dto.FilePath)
		m.storage.AssertExpectations(t)
	})

	t.Run("opting into indexing ingests the source", func(t *testing.T) {
		svc, m := newTestService(t)
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.indexer.On("IngestDocument", mock.Anything, mock.MatchedBy(func(cmd inbound.IngestDocumentCommand) bool {
			return cmd.Title == "Indexed Soup" && cmd.URL == "https://recipes.example/soup" && cmd.Language == "en"
		})).Return(nil)

		dto, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:           "Indexed Soup",
			URL:             "https://recipes.example/soup",
			StoreInVectorDB: true,
			OwnerID:         uuid.New(),
		})

		require.NoError(t, err)
		assert.True(t, dto.StoreInVectorDB)
		m.indexer.AssertExpectations(t)
	})

	t.Run("indexed file recipe passes the uploaded bytes through", func(t *testing.T) {
		svc, m := newTestService(t)
		content := []byte("<html><body>Simmer the soup gently.</body></html>")
		m.storage.On("Upload", mock.Anything, "recipes/soup.html", content, "text/html").
			Return("recipes/soup.html", nil)
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.indexer.On("IngestDocument", mock.Anything, mock.MatchedBy(func(cmd inbound.IngestDocumentCommand) bool {
			return cmd.FilePath == "recipes/soup.html" &&
				cmd.URL == "" &&
				string(cmd.FileData) == string(content)
		})).Return(nil)

		_, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:           "Uploaded Soup",
			FileName:        "soup.html",
			FileData:        content,
			FileContentType: "text/html",
			StoreInVectorDB: true,
			OwnerID:         uuid.New(),
		})

		require.NoError(t, err)
		m.indexer.AssertExpectations(t)
		m.storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("indexing failure does not fail creation", func(t *testing.T) {
		svc, m := newTestService(t)
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.indexer.On("IngestDocument", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:           "Indexed Soup",
			URL:             "https://recipes.example/soup",
			StoreInVectorDB: true,
			OwnerID:         uuid.New(),
		})
		assert.NoError(t, err)
	})

	t.Run("neither url nor file is a bad request", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:   "Sourceless",
			OwnerID: uuid.New(),
		})

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
	})

	t.Run("initial comment is attached", func(t *testing.T) {
		svc, m := newTestService(t)
		m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		dto, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
			Title:   "Commented Soup",
			URL:     "https://recipes.example/soup",
			Comment: "Family favourite",
			OwnerID: uuid.New(),
		})

		require.NoError(t, err)
		require.Len(t, dto.Comments, 1)
		assert.Equal(t, "Family favourite", dto.Comments[0].Content)
	})
}

func TestGetRecipeByID(t *testing.T) {
	t.Run("owner can read the recipe", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity := ownedRecipe(t, owner)
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)

		dto, err := svc.GetRecipeByID(context.Background(), entity.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, entity.ID(), dto.ID)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		svc, m := newTestService(t)
		entity := ownedRecipe(t, uuid.New())
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)

		_, err := svc.GetRecipeByID(context.Background(), entity.ID(), uuid.New())
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
	})

	t.Run("missing recipe maps to not found", func(t *testing.T) {
		svc, m := newTestService(t)
		m.repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, recipe.ErrRecipeNotFound)

		_, err := svc.GetRecipeByID(context.Background(), uuid.New(), uuid.New())
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeRecipeNotFound, appErr.Code)
	})
}

func TestUpdateRecipe(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("partial update changes only the given fields", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity := ownedRecipe(t, owner)
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Update", mock.Anything, entity).Return(nil)

		dto, err := svc.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
			RecipeID: entity.ID(),
			UserID:   owner,
			Title:    strPtr("Roasted Carrot Soup"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Roasted Carrot Soup", dto.Title)
		assert.Equal(t, "https://recipes.example/soup", dto.URL)
	})

	t.Run("toggling indexing on ingests the source", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity := ownedRecipe(t, owner)
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Update", mock.Anything, entity).Return(nil)
		m.indexer.On("IngestDocument", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
			RecipeID:        entity.ID(),
			UserID:          owner,
			StoreInVectorDB: boolPtr(true),
		})

		require.NoError(t, err)
		m.indexer.AssertExpectations(t)
	})

	t.Run("toggling indexing on for a file recipe fetches the stored object", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity, err := recipe.NewRecipe("Uploaded Soup", "", "recipes/soup.html", owner)
		require.NoError(t, err)
		entity.Events()
		content := []byte("<html><body>Simmer the soup gently.</body></html>")

		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Update", mock.Anything, entity).Return(nil)
		m.storage.On("Download", mock.Anything, "recipes/soup.html").Return(content, nil)
		m.indexer.On("IngestDocument", mock.Anything, mock.MatchedBy(func(cmd inbound.IngestDocumentCommand) bool {
			return cmd.FilePath == "recipes/soup.html" && string(cmd.FileData) == string(content)
		})).Return(nil)

		_, err = svc.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
			RecipeID:        entity.ID(),
			UserID:          owner,
			StoreInVectorDB: boolPtr(true),
		})

		require.NoError(t, err)
		m.storage.AssertExpectations(t)
		m.indexer.AssertExpectations(t)
	})

	t.Run("toggling indexing off removes indexed chunks", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity := ownedRecipe(t, owner)
		entity.EnableIndexing()
		entity.Events()

		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Update", mock.Anything, entity).Return(nil)
		m.indexer.On("DeleteIngestedDocument", mock.Anything, entity.ID().String()).Return(nil)

		_, err := svc.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
			RecipeID:        entity.ID(),
			UserID:          owner,
			StoreInVectorDB: boolPtr(false),
		})

		require.NoError(t, err)
		m.indexer.AssertExpectations(t)
		m.indexer.AssertNotCalled(t, "IngestDocument", mock.Anything, mock.Anything)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		svc, m := newTestService(t)
		entity := ownedRecipe(t, uuid.New())
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)

		_, err := svc.UpdateRecipe(context.Background(), inbound.UpdateRecipeCommand{
			RecipeID: entity.ID(),
			UserID:   uuid.New(),
			Title:    strPtr("Hijacked"),
		})

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
		m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteRecipe(t *testing.T) {
	t.Run("owner deletion also deindexes", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity := ownedRecipe(t, owner)
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Delete", mock.Anything, entity.ID()).Return(nil)
		m.indexer.On("DeleteIngestedDocument", mock.Anything, entity.ID().String()).Return(nil)

		require.NoError(t, svc.DeleteRecipe(context.Background(), entity.ID(), owner))
		m.repo.AssertExpectations(t)
		m.indexer.AssertExpectations(t)
		m.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleting a file recipe removes the stored object", func(t *testing.T) {
		svc, m := newTestService(t)
		owner := uuid.New()
		entity, err := recipe.NewRecipe("Uploaded Soup", "", "recipes/soup.html", owner)
		require.NoError(t, err)
		entity.Events()

		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("Delete", mock.Anything, entity.ID()).Return(nil)
		m.storage.On("Delete", mock.Anything, "recipes/soup.html").Return(nil)
		m.indexer.On("DeleteIngestedDocument", mock.Anything, entity.ID().String()).Return(nil)

		require.NoError(t, svc.DeleteRecipe(context.Background(), entity.ID(), owner))
		m.storage.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		svc, m := newTestService(t)
		entity := ownedRecipe(t, uuid.New())
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)

		err := svc.DeleteRecipe(context.Background(), entity.ID(), uuid.New())
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
		m.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("comment is validated and saved", func(t *testing.T) {
		svc, m := newTestService(t)
		entity := ownedRecipe(t, uuid.New())
		commenter := uuid.New()
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)
		m.repo.On("AddComment", mock.Anything, entity.ID(), mock.MatchedBy(func(c recipe.Comment) bool {
			return c.Content == "Lovely!" && c.UserID == commenter
		})).Return(nil)

		dto, err := svc.AddComment(context.Background(), inbound.AddCommentCommand{
			RecipeID: entity.ID(),
			UserID:   commenter,
			Content:  " Lovely! ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Lovely!", dto.Content)
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		svc, m := newTestService(t)
		entity := ownedRecipe(t, uuid.New())
		m.repo.On("FindByID", mock.Anything, entity.ID()).Return(entity, nil)

		_, err := svc.AddComment(context.Background(), inbound.AddCommentCommand{
			RecipeID: entity.ID(),
			UserID:   uuid.New(),
			Content:  "  ",
		})
		assert.Error(t, err)
	})
}

func TestSourceHelpers(t *testing.T) {
	t.Run("signed url uses the recipes prefix and expiry", func(t *testing.T) {
		svc, m := newTestService(t)
		m.storage.On("GeneratePresignedURL", mock.Anything, "recipes/soup.pdf", signedURLExpiry).
			Return("https://bucket.example/signed", nil)

		url, err := svc.GenerateSignedURL(context.Background(), "soup.pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example/signed", url)
	})

	t.Run("signed url requires a file name", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.GenerateSignedURL(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("open graph fetch delegates to the fetcher", func(t *testing.T) {
		svc, m := newTestService(t)
		m.opengraph.On("Fetch", mock.Anything, "https://recipes.example/soup").
			Return(map[string]string{"title": "Carrot Soup"}, nil)

		meta, err := svc.FetchOpenGraph(context.Background(), "https://recipes.example/soup")
		require.NoError(t, err)
		assert.Equal(t, "Carrot Soup", meta["title"])
	})

	t.Run("open graph fetch requires a url", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.FetchOpenGraph(context.Background(), "")
		assert.Error(t, err)
	})
}
