package file

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, f *File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*File, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*File), args.Error(1)
}

func (m *mockRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBlobs struct {
	mock.Mock
}

func (m *mockBlobs) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, path, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockBlobs) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) FilesChanged(ownerID int64) {
	m.Called(ownerID)
}

func (m *mockNotifier) UploadProgress(ownerID int64, status UploadStatus) {
	m.Called(ownerID, status)
}

func newTestService(repo *mockRepo, blobs *mockBlobs, notifier *mockNotifier) *Service {
	return NewService(repo, blobs, notifier, DefaultMaxFileSize, DefaultQuotaBytes)
}

func TestRename_EmptyNameLeavesRecordUntouched(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockBlobs), nil)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Rename(context.Background(), 1, "f1", name)
		assert.ErrorIs(t, err, ErrEmptyName)
	}
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestRename_TrimsAndUpdates(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := newTestService(repo, new(mockBlobs), notifier)

	repo.On("GetByID", mock.Anything, "f1").Return(&File{ID: "f1", OwnerID: 1, Name: "old"}, nil)
	repo.On("UpdateFields", mock.Anything, "f1", map[string]any{"name": "new name"}).Return(nil)
	notifier.On("FilesChanged", int64(1)).Return()

	f, err := svc.Rename(context.Background(), 1, "f1", "  new name  ")
	assert.NoError(t, err)
	assert.Equal(t, "new name", f.Name)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRename_NotOwner(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockBlobs), nil)

	repo.On("GetByID", mock.Anything, "f1").Return(&File{ID: "f1", OwnerID: 2}, nil)

	_, err := svc.Rename(context.Background(), 1, "f1", "name")
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleStar_Flips(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := newTestService(repo, new(mockBlobs), notifier)

	repo.On("GetByID", mock.Anything, "f1").Return(&File{ID: "f1", OwnerID: 1, Starred: false}, nil).Once()
	repo.On("UpdateFields", mock.Anything, "f1", map[string]any{"starred": true}).Return(nil).Once()
	notifier.On("FilesChanged", int64(1)).Return()

	f, err := svc.ToggleStar(context.Background(), 1, "f1")
	assert.NoError(t, err)
	assert.True(t, f.Starred)

	// Toggling a starred record goes back to false.
	repo.On("GetByID", mock.Anything, "f1").Return(&File{ID: "f1", OwnerID: 1, Starred: true}, nil).Once()
	repo.On("UpdateFields", mock.Anything, "f1", map[string]any{"starred": false}).Return(nil).Once()

	f, err = svc.ToggleStar(context.Background(), 1, "f1")
	assert.NoError(t, err)
	assert.False(t, f.Starred)
	repo.AssertExpectations(t)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := newTestService(repo, new(mockBlobs), notifier)

	repo.On("GetByID", mock.Anything, "f1").Return(&File{ID: "f1", OwnerID: 1}, nil)
	repo.On("UpdateFields", mock.Anything, "f1", map[string]any{"trashed": true}).Return(nil).Once()
	repo.On("UpdateFields", mock.Anything, "f1", map[string]any{"trashed": false}).Return(nil).Once()
	notifier.On("FilesChanged", int64(1)).Return()

	assert.NoError(t, svc.SoftDelete(context.Background(), 1, "f1"))
	assert.NoError(t, svc.Restore(context.Background(), 1, "f1"))
	repo.AssertExpectations(t)
}

func TestHardDelete_OnlyFromTrashView(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockBlobs), nil)

	for _, view := range []View{ViewMyDrive, ViewRecent, ViewStarred} {
		err := svc.HardDelete(context.Background(), 1, "f1", view)
		assert.ErrorIs(t, err, ErrNotTrashed)
	}
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHardDelete_RemovesBlobThenRecord(t *testing.T) {
	repo := new(mockRepo)
	blobs := new(mockBlobs)
	notifier := new(mockNotifier)
	svc := newTestService(repo, blobs, notifier)

	repo.On("GetByID", mock.Anything, "f1").
		Return(&File{ID: "f1", OwnerID: 1, Trashed: true, StoragePath: "files/1_x.pdf"}, nil)
	blobs.On("Delete", mock.Anything, "files/1_x.pdf").Return(nil)
	repo.On("Delete", mock.Anything, "f1").Return(nil)
	notifier.On("FilesChanged", int64(1)).Return()

	assert.NoError(t, svc.HardDelete(context.Background(), 1, "f1", ViewTrash))
	repo.AssertExpectations(t)
	blobs.AssertExpectations(t)
}

func TestHardDelete_NoStoragePathSkipsBlob(t *testing.T) {
	repo := new(mockRepo)
	blobs := new(mockBlobs)
	notifier := new(mockNotifier)
	svc := newTestService(repo, blobs, notifier)

	repo.On("GetByID", mock.Anything, "f1").
		Return(&File{ID: "f1", OwnerID: 1, Trashed: true, StoragePath: ""}, nil)
	repo.On("Delete", mock.Anything, "f1").Return(nil)
	notifier.On("FilesChanged", int64(1)).Return()

	assert.NoError(t, svc.HardDelete(context.Background(), 1, "f1", ViewTrash))
	blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestHardDelete_BlobFailureDoesNotBlockRecordDeletion(t *testing.T) {
	repo := new(mockRepo)
	blobs := new(mockBlobs)
	notifier := new(mockNotifier)
	svc := newTestService(repo, blobs, notifier)

	repo.On("GetByID", mock.Anything, "f1").
		Return(&File{ID: "f1", OwnerID: 1, Trashed: true, StoragePath: "files/1_x.pdf"}, nil)
	blobs.On("Delete", mock.Anything, "files/1_x.pdf").Return(errors.New("bucket unreachable"))
	repo.On("Delete", mock.Anything, "f1").Return(nil)
	notifier.On("FilesChanged", int64(1)).Return()

	assert.NoError(t, svc.HardDelete(context.Background(), 1, "f1", ViewTrash))
	repo.AssertExpectations(t)
}

func TestList_AppliesViewFilter(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockBlobs), nil)

	repo.On("ListByOwner", mock.Anything, int64(1)).Return([]*File{
		{ID: "a", OwnerID: 1, Name: "kept.txt"},
		{ID: "b", OwnerID: 1, Name: "binned.txt", Trashed: true},
	}, nil)

	visible, err := svc.List(context.Background(), 1, "", ViewMyDrive)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestQuota_UsesConfiguredCeiling(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockBlobs), nil)

	repo.On("ListByOwner", mock.Anything, int64(1)).Return([]*File{
		{ID: "a", OwnerID: 1, SizeBytes: gib},
	}, nil)

	usage, err := svc.Quota(context.Background(), 1)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, usage.UsedPercent, 0.001)
}
