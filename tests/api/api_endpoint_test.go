package api

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/linkstash/linkstash-backend/internal/api"
	"github.com/linkstash/linkstash-backend/internal/collector"
	"github.com/linkstash/linkstash-backend/internal/models"
	"github.com/linkstash/linkstash-backend/internal/preview"
	"github.com/linkstash/linkstash-backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EndToEndTestSuite drives the whole stack through the collector client:
// HTTP router, repositories, SQLite database and local object storage.
type EndToEndTestSuite struct {
	suite.Suite
	server     *httptest.Server
	objectsDir string
	store      *collector.APIStore
	collection *collector.Collection
}

// TestEndToEndTestSuite runs the test suite
func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}

// SetupTest builds a fresh stack for each test
func (s *EndToEndTestSuite) SetupTest() {
	os.Unsetenv("API_KEY")

	dbPath := filepath.Join(s.T().TempDir(), "linkstash.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.Require().NoError(db.AutoMigrate(&models.Link{}, &models.File{}))

	s.objectsDir = s.T().TempDir()
	objectStorage, err := storage.NewLocalStorage(s.objectsDir, "http://localhost:8080")
	s.Require().NoError(err)

	router := api.NewRouter(&api.RouterConfig{
		DB:            db,
		ObjectStorage: objectStorage,
		Preview:       preview.NewService("https://shots.example.com", "test-key"),
		ObjectsDir:    s.objectsDir,
		RateLimit:     1000,
		RateBurst:     1000,
	})

	s.server = httptest.NewServer(router)
	s.store = collector.NewAPIStore(s.server.URL, "")
	s.collection = collector.NewCollection(s.store, nil)
}

// TearDownTest stops the server
func (s *EndToEndTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *EndToEndTestSuite) TestCreateLink_AppearsAtHeadWithZeroFiles() {
	ctx := context.Background()

	_, err := s.collection.CreateLink(ctx, "Older", "https://example.com/older")
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)

	link, err := s.collection.CreateLink(ctx, "Docs", "https://docs.example.com")
	s.Require().NoError(err)

	links := s.collection.Links()
	s.Require().Len(links, 2)
	s.Equal("Docs", links[0].Title)
	s.True(models.IsValidGradient(links[0].Gradient))

	detail := collector.NewDetail(s.store, *link, nil)
	s.Require().NoError(detail.RefreshCount(ctx))
	s.Equal(int64(0), detail.FileCount())
}

func (s *EndToEndTestSuite) TestUploadTwoFiles_ListedNewestFirst() {
	ctx := context.Background()

	link, err := s.collection.CreateLink(ctx, "Docs", "https://docs.example.com")
	s.Require().NoError(err)

	detail := collector.NewDetail(s.store, *link, nil)

	result := detail.Upload(ctx, []collector.UploadItem{
		{Name: "a.pdf", ContentType: "application/pdf", Size: 8, Content: strings.NewReader("%PDF-1.4")},
	})
	s.Require().NoError(result.Err)
	time.Sleep(5 * time.Millisecond)

	result = detail.Upload(ctx, []collector.UploadItem{
		{Name: "b.png", ContentType: "image/png", Size: 3, Content: strings.NewReader("PNG")},
	})
	s.Require().NoError(result.Err)

	s.Require().NoError(detail.RefreshFiles(ctx))

	files := detail.Files()
	s.Require().Len(files, 2)
	s.Equal("b.png", files[0].Name)
	s.Equal(models.FileTypeImage, files[0].Type)
	s.Equal("a.pdf", files[1].Name)
	s.Equal(models.FileTypePDF, files[1].Type)
	s.Equal(int64(2), detail.FileCount())
}

func (s *EndToEndTestSuite) TestDeleteFile_DecrementsCountAndLeavesObject() {
	ctx := context.Background()

	link, err := s.collection.CreateLink(ctx, "Docs", "https://docs.example.com")
	s.Require().NoError(err)

	detail := collector.NewDetail(s.store, *link, nil)
	result := detail.Upload(ctx, []collector.UploadItem{
		{Name: "a.pdf", ContentType: "application/pdf", Size: 8, Content: strings.NewReader("%PDF-1.4")},
		{Name: "b.png", ContentType: "image/png", Size: 3, Content: strings.NewReader("PNG")},
	})
	s.Require().NoError(result.Err)
	s.Require().NoError(detail.RefreshFiles(ctx))
	s.Require().Len(detail.Files(), 2)

	victim := detail.Files()[0]
	s.Require().NoError(detail.DeleteFile(ctx, victim.ID))

	s.Len(detail.Files(), 1)
	s.Equal(int64(1), detail.FileCount())

	// The metadata row is gone but the stored object remains on disk
	objectPath := filepath.Join(s.objectsDir, filepath.FromSlash(victim.StorageKey))
	_, statErr := os.Stat(objectPath)
	s.NoError(statErr)

	// Remote state agrees after a full refresh
	s.Require().NoError(detail.RefreshFiles(ctx))
	s.Len(detail.Files(), 1)
}

func (s *EndToEndTestSuite) TestEditLink_RefreshesCollection() {
	ctx := context.Background()

	link, err := s.collection.CreateLink(ctx, "Docs", "https://docs.example.com")
	s.Require().NoError(err)
	gradient := link.Gradient

	detail := collector.NewDetail(s.store, *link, nil)
	detail.OnUpdated(func() {
		_ = s.collection.Refresh(ctx)
	})

	err = detail.EditLink(ctx, collector.LinkFields{
		Title: "Documentation",
		URL:   "https://docs.example.com/v2",
	})
	s.Require().NoError(err)

	s.Equal("Documentation", detail.Link().Title)
	s.Equal(gradient, detail.Link().Gradient)

	links := s.collection.Links()
	s.Require().Len(links, 1)
	s.Equal("Documentation", links[0].Title)
	s.Equal("https://docs.example.com/v2", links[0].URL)
}

func (s *EndToEndTestSuite) TestSearch_FiltersByTitle() {
	ctx := context.Background()

	_, err := s.collection.CreateLink(ctx, "Go documentation", "https://go.dev/doc")
	s.Require().NoError(err)
	_, err = s.collection.CreateLink(ctx, "Rust book", "https://doc.rust-lang.org/book")
	s.Require().NoError(err)

	s.collection.SetQuery("go")
	filtered := s.collection.Filtered()
	s.Require().Len(filtered, 1)
	s.Equal("Go documentation", filtered[0].Title)

	s.collection.SetQuery("")
	s.Len(s.collection.Filtered(), 2)
}
