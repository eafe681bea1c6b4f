package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/linkstash/linkstash-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FileRepositoryTestSuite is the test suite for FileRepository
type FileRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     FileRepository
	testLink *models.Link
}

// SetupSuite runs once before all tests
func (s *FileRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&models.Link{}, &models.File{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewFileRepository(db)
}

// TearDownSuite runs once after all tests
func (s *FileRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data and create test fixtures
func (s *FileRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM files")
	s.db.Exec("DELETE FROM links")

	s.testLink = &models.Link{
		Title:    "Docs",
		URL:      "https://example.com",
		Gradient: models.Gradients[0],
	}
	require.NoError(s.T(), s.db.Create(s.testLink).Error)
}

func (s *FileRepositoryTestSuite) createFile(linkID uint, name, fileType string, createdAt time.Time) *models.File {
	file := &models.File{
		LinkID:     linkID,
		Name:       name,
		URL:        "https://cdn.example.com/" + name,
		Type:       fileType,
		StorageKey: "1/" + name,
		CreatedAt:  createdAt,
	}
	require.NoError(s.T(), s.db.Create(file).Error)
	return file
}

// TestFileRepositoryTestSuite runs the test suite
func TestFileRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) TestCreate_Success() {
	file := &models.File{
		LinkID: s.testLink.ID,
		Name:   "report.pdf",
		URL:    "https://cdn.example.com/report.pdf",
		Type:   models.FileTypePDF,
	}

	err := s.repo.Create(context.Background(), file)

	s.NoError(err)
	s.NotZero(file.ID)
}

func (s *FileRepositoryTestSuite) TestGetByID_NotFound() {
	file, err := s.repo.GetByID(context.Background(), 999)

	s.ErrorIs(err, ErrNotFound)
	s.Nil(file)
}

func (s *FileRepositoryTestSuite) TestListByLink_OrderedNewestFirst() {
	base := time.Now().Add(-time.Hour)
	s.createFile(s.testLink.ID, "a.pdf", models.FileTypePDF, base)
	s.createFile(s.testLink.ID, "b.png", models.FileTypeImage, base.Add(time.Minute))

	files, err := s.repo.ListByLink(context.Background(), s.testLink.ID)

	s.NoError(err)
	s.Len(files, 2)
	// Upload order reversed by timestamp ordering: b.png first, a.pdf second
	s.Equal("b.png", files[0].Name)
	s.Equal(models.FileTypeImage, files[0].Type)
	s.Equal("a.pdf", files[1].Name)
	s.Equal(models.FileTypePDF, files[1].Type)
}

func (s *FileRepositoryTestSuite) TestListByLink_ScopedToLink() {
	other := &models.Link{Title: "Other", URL: "https://other.example.com"}
	require.NoError(s.T(), s.db.Create(other).Error)

	now := time.Now()
	s.createFile(s.testLink.ID, "mine.pdf", models.FileTypePDF, now)
	s.createFile(other.ID, "theirs.png", models.FileTypeImage, now)

	files, err := s.repo.ListByLink(context.Background(), s.testLink.ID)

	s.NoError(err)
	s.Len(files, 1)
	s.Equal("mine.pdf", files[0].Name)
}

func (s *FileRepositoryTestSuite) TestCountByLink() {
	now := time.Now()
	s.createFile(s.testLink.ID, "a.pdf", models.FileTypePDF, now)
	s.createFile(s.testLink.ID, "b.png", models.FileTypeImage, now)

	count, err := s.repo.CountByLink(context.Background(), s.testLink.ID)

	s.NoError(err)
	s.Equal(int64(2), count)
}

func (s *FileRepositoryTestSuite) TestCountByLink_ZeroForFreshLink() {
	count, err := s.repo.CountByLink(context.Background(), s.testLink.ID)

	s.NoError(err)
	s.Equal(int64(0), count)
}

func (s *FileRepositoryTestSuite) TestDelete_RemovesExactlyOneRecord() {
	now := time.Now()
	target := s.createFile(s.testLink.ID, "a.pdf", models.FileTypePDF, now)
	s.createFile(s.testLink.ID, "b.png", models.FileTypeImage, now)

	err := s.repo.Delete(context.Background(), target.ID)
	s.NoError(err)

	count, err := s.repo.CountByLink(context.Background(), s.testLink.ID)
	s.NoError(err)
	s.Equal(int64(1), count)

	_, err = s.repo.GetByID(context.Background(), target.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *FileRepositoryTestSuite) TestDelete_DoesNotAffectOtherLinks() {
	other := &models.Link{Title: "Other", URL: "https://other.example.com"}
	require.NoError(s.T(), s.db.Create(other).Error)

	now := time.Now()
	target := s.createFile(s.testLink.ID, "mine.pdf", models.FileTypePDF, now)
	s.createFile(other.ID, "theirs.png", models.FileTypeImage, now)

	s.NoError(s.repo.Delete(context.Background(), target.ID))

	count, err := s.repo.CountByLink(context.Background(), other.ID)
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *FileRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(context.Background(), 999)

	s.ErrorIs(err, ErrNotFound)
}
