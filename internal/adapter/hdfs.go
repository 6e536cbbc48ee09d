package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/colinmarc/hdfs/v2"
	"github.com/google/uuid"
	"github.com/hamba/avro/v2/ocf"
	"github.com/niksmo/checkout-adapters/internal/core/domain"
	"github.com/niksmo/checkout-adapters/internal/core/port"
	"github.com/niksmo/checkout-adapters/pkg/schema"
)

var _ port.ConfirmationStorage = HDFSArchive{}

type HDFSOption func(*hdfsArchiveOpts) error

func HDFSClientOpt(cl *hdfs.Client) HDFSOption {
	return func(o *hdfsArchiveOpts) error {
		if cl != nil {
			o.cl = cl
			return nil
		}
		return errors.New("hdfs client is nil")
	}
}

func HDFSDirOpt(dir string) HDFSOption {
	return func(o *hdfsArchiveOpts) error {
		if path.IsAbs(dir) {
			o.dir = dir
			return nil
		}
		return fmt.Errorf("hdfs dir must be absolute: %q", dir)
	}
}

type hdfsArchiveOpts struct {
	cl  *hdfs.Client
	dir string
}

// archiveFS is the part of *hdfs.Client the archive writes through.
type archiveFS interface {
	MkdirAll(dirname string, perm os.FileMode) error
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
	Close() error
}

type hdfsFS struct {
	*hdfs.Client
}

func (fs hdfsFS) Create(name string) (io.WriteCloser, error) {
	return fs.Client.Create(name)
}

// HDFSArchive writes each confirmation batch into its own Avro container file.
type HDFSArchive struct {
	fs  archiveFS
	dir string
}

func NewHDFSArchive(opts ...HDFSOption) HDFSArchive {
	const op = "NewHDFSArchive"

	if len(opts) == 0 {
		panic(fmt.Errorf("%s: options not set", op))
	}

	options := hdfsArchiveOpts{dir: "/"}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			panic(fmt.Errorf("%s: %w", op, err)) //develop mistake
		}
	}
	if options.cl == nil {
		panic(fmt.Errorf("%s: hdfs client not set", op))
	}
	return HDFSArchive{hdfsFS{options.cl}, options.dir}
}

func (s HDFSArchive) Close(onFail func(error)) {
	if err := s.fs.Close(); err != nil {
		onFail(err)
	}
}

func (s HDFSArchive) Save(cs []domain.Confirmation) error {
	const op = "HDFSArchive.Save"
	log := slog.With("op", op)

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%s: failed to create dir: %w", op, err)
	}

	filename := s.createFilepath()

	fw, err := s.fs.Create(filename)
	if err != nil {
		return fmt.Errorf("%s: failed to create file: %w", op, err)
	}

	if err := writeConfirmations(fw, cs); err != nil {
		_ = fw.Close()
		if rmErr := s.fs.Remove(filename); rmErr != nil {
			log.Error("failed to remove partial file", "filename", filename, "err", rmErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := closeReplicated(fw); err != nil {
		return fmt.Errorf("%s: failed to close file: %w", op, err)
	}

	log.Info("confirmations saved successfully", "filename", filename, "count", len(cs))
	return nil
}

func (s HDFSArchive) createFilepath() string {
	return path.Join(s.dir, "confirmations_"+uuid.NewString()+".avro")
}

// writeConfirmations encodes cs as an Avro object container.
func writeConfirmations(w io.Writer, cs []domain.Confirmation) error {
	const op = "writeConfirmations"

	enc, err := ocf.NewEncoder(schema.ConfirmationSchemaTextV1, w)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, c := range cs {
		v := schema.ConfirmationV1{
			ID:        c.ID,
			Provider:  string(c.Provider),
			Amount:    c.Amount,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// closeReplicated retries Close while the last block is still replicating.
func closeReplicated(fw io.Closer) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		<-timer.C
		err := fw.Close()
		if err == nil {
			return nil
		}
		if errors.Is(err, hdfs.ErrReplicating) {
			timer.Reset(1 * time.Second)
			continue
		}
		return err
	}
}
