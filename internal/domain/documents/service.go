package documents

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/blobstore"
)

type Service struct {
	docs     Repository
	patients PatientDirectory
	doctors  DoctorDirectory
	blobs    blobstore.Store
	log      zerolog.Logger
}

func NewService(docs Repository, patients PatientDirectory, doctors DoctorDirectory, blobs blobstore.Store, log zerolog.Logger) *Service {
	return &Service{docs: docs, patients: patients, doctors: doctors, blobs: blobs, log: log}
}

// UploadInput carries everything needed to store one document.
type UploadInput struct {
	OriginalFilename string
	Content          io.Reader
	FileType         *string
	PatientID        *int64
	DoctorID         *int64
	Description      *string
}

// Upload writes the blob first, then the metadata row. A failure between the
// two orphans a blob; it never creates a row pointing at a missing file.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*Document, error) {
	if in.OriginalFilename == "" {
		return nil, apperror.Validation("filename is required")
	}
	if !blobstore.AllowedFile(in.OriginalFilename) {
		return nil, apperror.Validation("file type not allowed: %s", in.OriginalFilename)
	}
	if in.PatientID != nil {
		ok, err := s.patients.Exists(ctx, *in.PatientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Constraint("patient %d does not exist", *in.PatientID)
		}
	}
	if in.DoctorID != nil {
		ok, err := s.doctors.Exists(ctx, *in.DoctorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Constraint("doctor %d does not exist", *in.DoctorID)
		}
	}
	name := blobstore.GenerateName(in.OriginalFilename)
	size, err := s.blobs.Put(ctx, name, in.Content)
	if err != nil {
		return nil, err
	}
	fileType := in.FileType
	if fileType == nil {
		if ext := blobstore.Ext(in.OriginalFilename); ext != "" {
			fileType = &ext
		}
	}
	d := &Document{
		Filename:         name,
		OriginalFilename: in.OriginalFilename,
		FileType:         fileType,
		FileSize:         size,
		PatientID:        in.PatientID,
		DoctorID:         in.DoctorID,
		Description:      in.Description,
	}
	if err := s.docs.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	return s.docs.GetByID(ctx, id)
}

// Download returns the document and its content. The caller closes the
// reader.
func (s *Service) Download(ctx context.Context, id int64) (*Document, io.ReadCloser, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Get(ctx, d.Filename)
	if err != nil {
		return nil, nil, err
	}
	return d, rc, nil
}

// Delete removes the row first, then the blob. A blob left behind is an
// orphan, not a dangling reference; its removal failure is only logged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, d.Filename); err != nil {
		s.log.Warn().Err(err).Str("filename", d.Filename).Msg("orphaned blob left behind")
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Document, int, error) {
	return s.docs.List(ctx, limit, offset)
}
