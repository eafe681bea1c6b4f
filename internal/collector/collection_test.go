package collector_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/linkstash/linkstash-backend/internal/collector"
	"github.com/linkstash/linkstash-backend/internal/models"
	"github.com/linkstash/linkstash-backend/tests/mocks"
)

// CollectionTestSuite is the test suite for the Collection controller
type CollectionTestSuite struct {
	suite.Suite
	mockStore  *mocks.MockStore
	collection *collector.Collection
}

// SetupTest runs before each test
func (s *CollectionTestSuite) SetupTest() {
	s.mockStore = new(mocks.MockStore)
	s.collection = collector.NewCollection(s.mockStore, nil)
}

// TearDownTest runs after each test
func (s *CollectionTestSuite) TearDownTest() {
	s.mockStore.AssertExpectations(s.T())
}

// TestCollectionTestSuite runs the test suite
func TestCollectionTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionTestSuite))
}

// Helper function to create a test link
func testLink(id uint, title string, createdAt time.Time) models.Link {
	return models.Link{
		ID:        id,
		Title:     title,
		URL:       "https://example.com",
		Gradient:  models.Gradients[0],
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// ==================== Refresh Tests ====================

func (s *CollectionTestSuite) TestRefresh_ReplacesList() {
	now := time.Now()
	links := []models.Link{
		testLink(2, "Newest", now),
		testLink(1, "Oldest", now.Add(-time.Hour)),
	}

	s.mockStore.On("ListLinks", mock.Anything).Return(links, nil)

	err := s.collection.Refresh(context.Background())

	s.NoError(err)
	got := s.collection.Links()
	s.Require().Len(got, 2)
	s.Equal(uint(2), got[0].ID)
	s.Equal(uint(1), got[1].ID)
}

func (s *CollectionTestSuite) TestRefresh_ClearsLoadingOnSuccess() {
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{}, nil)

	err := s.collection.Refresh(context.Background())

	s.NoError(err)
	s.False(s.collection.Loading())
}

func (s *CollectionTestSuite) TestRefresh_ClearsLoadingOnFailure() {
	s.mockStore.On("ListLinks", mock.Anything).Return(nil, errors.New("network down"))

	err := s.collection.Refresh(context.Background())

	s.Error(err)
	s.False(s.collection.Loading())
}

func (s *CollectionTestSuite) TestRefresh_KeepsPreviousListOnFailure() {
	now := time.Now()
	links := []models.Link{testLink(1, "Kept", now)}

	s.mockStore.On("ListLinks", mock.Anything).Return(links, nil).Once()
	s.mockStore.On("ListLinks", mock.Anything).Return(nil, errors.New("network down")).Once()

	s.NoError(s.collection.Refresh(context.Background()))
	s.Error(s.collection.Refresh(context.Background()))

	got := s.collection.Links()
	s.Require().Len(got, 1)
	s.Equal("Kept", got[0].Title)
}

func (s *CollectionTestSuite) TestRefresh_CanceledContextDoesNotWrite() {
	now := time.Now()
	links := []models.Link{testLink(1, "Stale", now)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.mockStore.On("ListLinks", mock.Anything).Return(links, nil)

	err := s.collection.Refresh(ctx)

	s.ErrorIs(err, context.Canceled)
	s.Empty(s.collection.Links())
	s.False(s.collection.Loading())
}

// ==================== Filter Tests ====================

func (s *CollectionTestSuite) TestFiltered_SubstringMatch() {
	now := time.Now()
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{
		testLink(1, "Go documentation", now),
		testLink(2, "Rust book", now),
		testLink(3, "Django docs", now),
	}, nil)
	s.NoError(s.collection.Refresh(context.Background()))

	s.collection.SetQuery("doc")

	got := s.collection.Filtered()
	s.Require().Len(got, 2)
	s.Equal("Go documentation", got[0].Title)
	s.Equal("Django docs", got[1].Title)
}

func (s *CollectionTestSuite) TestFiltered_CaseInsensitive() {
	now := time.Now()
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{
		testLink(1, "Go Documentation", now),
	}, nil)
	s.NoError(s.collection.Refresh(context.Background()))

	s.collection.SetQuery("DOCUMENT")

	s.Len(s.collection.Filtered(), 1)
}

func (s *CollectionTestSuite) TestFiltered_EmptyQueryReturnsAll() {
	now := time.Now()
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{
		testLink(1, "A", now),
		testLink(2, "B", now),
	}, nil)
	s.NoError(s.collection.Refresh(context.Background()))

	s.Len(s.collection.Filtered(), 2)
}

func (s *CollectionTestSuite) TestFiltered_NoMatch() {
	now := time.Now()
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{
		testLink(1, "A", now),
	}, nil)
	s.NoError(s.collection.Refresh(context.Background()))

	s.collection.SetQuery("zzz")

	s.Empty(s.collection.Filtered())
}

func (s *CollectionTestSuite) TestSetQuery_NoRemoteCall() {
	s.collection.SetQuery("anything")
	s.Equal("anything", s.collection.Query())
	// TearDownTest asserts no store expectations were needed
}

// ==================== CreateLink Tests ====================

func (s *CollectionTestSuite) TestCreateLink_ValidInput() {
	now := time.Now()
	created := testLink(3, "Docs", now)

	s.mockStore.On("CreateLink", mock.Anything, "Docs", "https://docs.example.com", "").
		Return(&created, nil)
	s.mockStore.On("ListLinks", mock.Anything).Return([]models.Link{
		created,
		testLink(1, "Older", now.Add(-time.Hour)),
	}, nil)

	link, err := s.collection.CreateLink(context.Background(), "Docs", "https://docs.example.com")

	s.NoError(err)
	s.Require().NotNil(link)
	s.Equal("Docs", link.Title)

	// The new link is at the head after the refresh
	got := s.collection.Links()
	s.Require().NotEmpty(got)
	s.Equal(uint(3), got[0].ID)
}

func (s *CollectionTestSuite) TestCreateLink_EmptyTitleRejectedLocally() {
	link, err := s.collection.CreateLink(context.Background(), "", "https://docs.example.com")

	s.Nil(link)
	s.True(collector.IsValidationError(err))
	s.mockStore.AssertNotCalled(s.T(), "CreateLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CollectionTestSuite) TestCreateLink_MalformedURLRejectedLocally() {
	link, err := s.collection.CreateLink(context.Background(), "Docs", "not a url")

	s.Nil(link)
	s.True(collector.IsValidationError(err))
	s.mockStore.AssertNotCalled(s.T(), "CreateLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CollectionTestSuite) TestCreateLink_RemoteFailure() {
	s.mockStore.On("CreateLink", mock.Anything, "Docs", "https://docs.example.com", "").
		Return(nil, &collector.StoreError{Op: "CreateLink", Err: errors.New("boom")})

	link, err := s.collection.CreateLink(context.Background(), "Docs", "https://docs.example.com")

	s.Nil(link)
	s.Error(err)

	var storeErr *collector.StoreError
	s.ErrorAs(err, &storeErr)
	s.Equal("CreateLink", storeErr.Op)
}
