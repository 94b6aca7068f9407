package file

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"godrive/internal/blobstore"
)

const (
	DefaultMaxFileSize = 50 * 1024 * 1024       // 50 MB
	DefaultQuotaBytes  = 2 * 1024 * 1024 * 1024 // 2 GiB per owner
)

// Notifier pushes collection changes and upload progress to connected
// clients. The websocket hub implements it; a no-op suffices in tests.
type Notifier interface {
	FilesChanged(ownerID int64)
	UploadProgress(ownerID int64, status UploadStatus)
}

// Service owns every mutation of the file collection: upload, rename, star,
// soft delete, restore and permanent deletion. Mutations are written to the
// repository and then announced through the notifier; callers never wait on
// connected clients.
type Service struct {
	repo        Repository
	blobs       blobstore.Store
	notifier    Notifier
	maxFileSize int64
	quotaBytes  int64

	mu       sync.Mutex
	trackers map[int64]*ProgressTracker // one upload session per owner
}

func NewService(repo Repository, blobs blobstore.Store, notifier Notifier, maxFileSize, quotaBytes int64) *Service {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if quotaBytes <= 0 {
		quotaBytes = DefaultQuotaBytes
	}
	return &Service{
		repo:        repo,
		blobs:       blobs,
		notifier:    notifier,
		maxFileSize: maxFileSize,
		quotaBytes:  quotaBytes,
		trackers:    make(map[int64]*ProgressTracker),
	}
}

// List returns the owner's visible files for a view and search term.
func (s *Service) List(ctx context.Context, ownerID int64, search string, view View) ([]*File, error) {
	files, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return SelectVisible(files, search, view), nil
}

// GetByID returns one record after an ownership check.
func (s *Service) GetByID(ctx context.Context, ownerID int64, id string) (*File, error) {
	return s.getOwned(ctx, ownerID, id)
}

// Quota projects the owner's storage consumption against the configured
// ceiling.
func (s *Service) Quota(ctx context.Context, ownerID int64) (QuotaUsage, error) {
	files, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return QuotaUsage{}, err
	}
	return ProjectQuota(files, ownerID, s.quotaBytes), nil
}

// Upload streams the file into the blob store and creates its record with
// starred=false, trashed=false. One upload per owner at a time; a second
// attempt while one is in flight returns ErrUploadInFlight.
func (s *Service) Upload(ctx context.Context, ownerID int64, fh *multipart.FileHeader) (*File, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	usage, err := s.Quota(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if usage.UsedBytes+fh.Size > s.quotaBytes {
		return nil, ErrQuotaExceeded
	}

	tracker := s.trackerFor(ownerID)
	if err := tracker.Begin(fh.Size); err != nil {
		return nil, err
	}

	f, err := s.doUpload(ctx, ownerID, fh, tracker)
	if err != nil {
		tracker.Fail(err)
		return nil, err
	}

	tracker.Succeed(f)
	s.filesChanged(ownerID)
	return f, nil
}

func (s *Service) doUpload(ctx context.Context, ownerID int64, fh *multipart.FileHeader, tracker *ProgressTracker) (*File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	// Detect MIME type from the first 512 bytes, then rewind.
	buf := make([]byte, 512)
	n, _ := src.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if seeker, ok := src.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	path := fmt.Sprintf("files/%d_%s", now.UnixMilli(), sanitizeName(fh.Filename)+filepath.Ext(fh.Filename))

	url, err := s.blobs.Upload(ctx, path, &progressReader{r: src, tracker: tracker}, fh.Size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	f := &File{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        fh.Filename,
		SizeBytes:   fh.Size,
		MimeType:    mimeType,
		DownloadURL: url,
		StoragePath: path,
		Starred:     false,
		Trashed:     false,
		UploadedAt:  now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Roll back the blob so a failed record does not leak storage.
		if derr := s.blobs.Delete(ctx, path); derr != nil {
			log.Printf("upload rollback: blob delete failed path=%s err=%v", path, derr)
		}
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return f, nil
}

// Rename updates the display name. The name is trimmed and must be non-empty;
// an empty result leaves the record untouched. The returned copy carries the
// new name so callers can refresh their view without a round trip.
func (s *Service) Rename(ctx context.Context, ownerID int64, id, newName string) (*File, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrEmptyName
	}

	f, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{"name": newName}); err != nil {
		return nil, err
	}

	f.Name = newName
	s.filesChanged(ownerID)
	return f, nil
}

// ToggleStar flips the starred flag.
func (s *Service) ToggleStar(ctx context.Context, ownerID int64, id string) (*File, error) {
	f, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{"starred": !f.Starred}); err != nil {
		return nil, err
	}

	f.Starred = !f.Starred
	s.filesChanged(ownerID)
	return f, nil
}

// SoftDelete moves the file to the trash. The blob stays in the store.
func (s *Service) SoftDelete(ctx context.Context, ownerID int64, id string) error {
	return s.setTrashed(ctx, ownerID, id, true)
}

// Restore takes the file back out of the trash, star state intact.
func (s *Service) Restore(ctx context.Context, ownerID int64, id string) error {
	return s.setTrashed(ctx, ownerID, id, false)
}

func (s *Service) setTrashed(ctx context.Context, ownerID int64, id string, trashed bool) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"trashed": trashed}); err != nil {
		return err
	}
	s.filesChanged(ownerID)
	return nil
}

// HardDelete permanently removes the record and its blob. Only allowed from
// the trash view. Blob deletion is best-effort: a storage failure is logged
// and the record is removed regardless — an orphaned blob beats a record the
// user cannot get rid of. A record with no storage path skips the blob step.
func (s *Service) HardDelete(ctx context.Context, ownerID int64, id string, view View) error {
	if view != ViewTrash {
		return ErrNotTrashed
	}

	f, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if f.StoragePath != "" {
		if err := s.blobs.Delete(ctx, f.StoragePath); err != nil {
			log.Printf("hard delete: blob delete failed id=%s path=%s err=%v", f.ID, f.StoragePath, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.filesChanged(ownerID)
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID int64, id string) (*File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return f, nil
}

func (s *Service) trackerFor(ownerID int64) *ProgressTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[ownerID]
	if !ok {
		t = NewProgressTracker(func(status UploadStatus) {
			if s.notifier != nil {
				s.notifier.UploadProgress(ownerID, status)
			}
		})
		s.trackers[ownerID] = t
	}
	return t
}

func (s *Service) filesChanged(ownerID int64) {
	if s.notifier != nil {
		s.notifier.FilesChanged(ownerID)
	}
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
