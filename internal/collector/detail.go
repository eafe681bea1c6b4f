package collector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linkstash/linkstash-backend/internal/models"
)

// Detail is the controller for a single link's detail view: its file list
// and file count. Both settle synchronously via the Refresh methods before
// the view opens.
type Detail struct {
	mu    sync.Mutex
	store Store
	log   *slog.Logger

	link      models.Link
	files     []models.File
	fileCount int64

	// onUpdated fires after a successful edit so the owning collection
	// can re-fetch the list.
	onUpdated func()
}

// NewDetail creates a Detail controller for the given link.
func NewDetail(store Store, link models.Link, logger *slog.Logger) *Detail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detail{
		store: store,
		log:   logger,
		link:  link,
	}
}

// OnUpdated registers a callback invoked after a successful EditLink.
func (d *Detail) OnUpdated(fn func()) {
	d.mu.Lock()
	d.onUpdated = fn
	d.mu.Unlock()
}

// Link returns the current link snapshot.
func (d *Detail) Link() models.Link {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.link
}

// Files returns the file list in remote order, newest first.
func (d *Detail) Files() []models.File {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.File, len(d.files))
	copy(out, d.files)
	return out
}

// FileCount returns the attachment count.
func (d *Detail) FileCount() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fileCount
}

// RefreshCount fetches the remote attachment count.
func (d *Detail) RefreshCount(ctx context.Context) error {
	count, err := d.store.CountFiles(ctx, d.link.ID)
	if err != nil {
		d.log.Error("failed to refresh file count",
			slog.Uint64("link_id", uint64(d.link.ID)),
			slog.String("error", err.Error()))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	d.fileCount = count
	d.mu.Unlock()
	return nil
}

// RefreshFiles replaces the file list with the remote state.
func (d *Detail) RefreshFiles(ctx context.Context) error {
	files, err := d.store.ListFiles(ctx, d.link.ID)
	if err != nil {
		d.log.Error("failed to refresh files",
			slog.Uint64("link_id", uint64(d.link.ID)),
			slog.String("error", err.Error()))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	d.files = files
	d.fileCount = int64(len(files))
	d.mu.Unlock()
	return nil
}

// UploadResult reports the outcome of a multi-file upload.
type UploadResult struct {
	// Uploaded is the number of items fully persisted (object + record).
	Uploaded int
	// FailedIndex is the index of the item that failed, or -1.
	FailedIndex int
	// Err is the failure that stopped the upload, if any.
	Err error
}

// Upload persists the items strictly in order: for each, the object is
// stored first, then its metadata row. The first failure aborts the rest;
// items persisted before it stay persisted. Callers refresh the file list
// afterwards regardless of outcome.
func (d *Detail) Upload(ctx context.Context, items []UploadItem) UploadResult {
	for i, item := range items {
		key, publicURL, err := d.store.UploadObject(ctx, d.link.ID, item.Name, item.ContentType, item.Content)
		if err != nil {
			d.log.Error("upload aborted",
				slog.Uint64("link_id", uint64(d.link.ID)),
				slog.String("name", item.Name),
				slog.String("error", err.Error()))
			return UploadResult{Uploaded: i, FailedIndex: i, Err: err}
		}

		record := &models.File{
			LinkID:     d.link.ID,
			Name:       item.Name,
			URL:        publicURL,
			Type:       models.ClassifyContentType(item.ContentType),
			StorageKey: key,
			SizeBytes:  item.Size,
		}
		if _, err := d.store.CreateFileRecord(ctx, record); err != nil {
			d.log.Error("upload aborted after object store",
				slog.Uint64("link_id", uint64(d.link.ID)),
				slog.String("name", item.Name),
				slog.String("error", err.Error()))
			return UploadResult{Uploaded: i, FailedIndex: i, Err: err}
		}
	}
	return UploadResult{Uploaded: len(items), FailedIndex: -1}
}

// DeleteFile removes the file's metadata row remotely, then drops it from
// the local list and decrements the count by exactly one. Files of other
// links are untouched; the stored object is left behind.
func (d *Detail) DeleteFile(ctx context.Context, id uint) error {
	if err := d.store.DeleteFile(ctx, id); err != nil {
		d.log.Error("failed to delete file",
			slog.Uint64("file_id", uint64(id)),
			slog.String("error", err.Error()))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.files {
		if d.files[i].ID == id {
			d.files = append(d.files[:i], d.files[i+1:]...)
			d.fileCount--
			break
		}
	}
	return nil
}

// EditLink validates and saves the new fields, updates the local snapshot
// and fires the onUpdated callback so the parent list can refresh.
func (d *Detail) EditLink(ctx context.Context, fields LinkFields) error {
	if err := ValidateLinkInput(fields.Title, fields.URL); err != nil {
		return err
	}

	updated, err := d.store.UpdateLink(ctx, d.link.ID, fields)
	if err != nil {
		d.log.Error("failed to edit link",
			slog.Uint64("link_id", uint64(d.link.ID)),
			slog.String("error", err.Error()))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	d.link = *updated
	onUpdated := d.onUpdated
	d.mu.Unlock()

	if onUpdated != nil {
		onUpdated()
	}
	return nil
}
