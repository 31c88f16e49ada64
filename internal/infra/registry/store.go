// Package registry provides a Git plumbing-based implementation of the
// task registry. Records live inside the repository itself, so they travel
// with clones and never touch the working tree.
package registry

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// Store implements domain.TaskRegistry using Git plumbing (refs and blobs).
//
// Data structure:
//
//	refs/<namespace>/
//	  initialized → blob (marker)
//	  current     → blob (name of the checked-out task, may be empty)
//	  tasks/
//	    <name>    → blob (task YAML)
type Store struct {
	repo      *gogit.Repository
	namespace string // e.g. "codesnap"
	mu        sync.RWMutex
}

// DefaultNamespace is the ref namespace used by the cs tool.
const DefaultNamespace = "codesnap"

// NewWithRepo creates a Store with an existing repository instance.
func NewWithRepo(repo *gogit.Repository, namespace string) *Store {
	return &Store{repo: repo, namespace: namespace}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// taskRef returns the ref name for a task.
func (s *Store) taskRef(name string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "tasks/" + name)
}

// currentRef returns the ref name for the current task pointer.
func (s *Store) currentRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "current")
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Get retrieves a task by name. Returns nil if not found.
func (s *Store) Get(name string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.taskRef(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read task: %w", err)
	}

	var task domain.Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	task.Name = name

	return &task, nil
}

// Put creates or updates a task record. The write is atomic: the blob is
// stored first and the ref swap is a single operation.
func (s *Store) Put(task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.taskRef(task.Name), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set task ref: %w", err)
	}

	return nil
}

// All retrieves every task, including pruned archival records.
func (s *Store) All() ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := s.refPrefix() + "tasks/"

	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	var tasks []*domain.Task
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		refName := string(ref.Name())
		if !strings.HasPrefix(refName, prefix) {
			return nil
		}
		name := refName[len(prefix):]
		if name == "" {
			return nil
		}

		data, readErr := s.readBlob(ref.Hash())
		if readErr != nil {
			return fmt.Errorf("read task %s: %w", name, readErr)
		}

		var task domain.Task
		if decodeErr := yaml.Unmarshal(data, &task); decodeErr != nil {
			return fmt.Errorf("decode task %s: %w", name, decodeErr)
		}
		task.Name = name

		tasks = append(tasks, &task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by name for consistent ordering; callers reorder as needed.
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return strings.Compare(a.Name, b.Name)
	})

	return tasks, nil
}

// Current returns the name of the checked-out task, or "".
func (s *Store) Current() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.currentRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get current ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("read current: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrent records the checked-out task. An empty name clears it.
func (s *Store) SetCurrent(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		if err := s.repo.Storer.RemoveReference(s.currentRef()); err != nil &&
			!errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("remove current ref: %w", err)
		}
		return nil
	}

	hash, err := s.writeBlob([]byte(name))
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.currentRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set current ref: %w", err)
	}
	return nil
}

// Initialize creates the initialized marker if it doesn't exist.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return nil // Already initialized
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("check initialized ref: %w", err)
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set initialized ref: %w", err)
	}
	return nil
}

// IsInitialized checks if the registry has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	return err == nil
}

// writeBlob writes data to a blob and returns its hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}
	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

// readBlob reads data from a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data := make([]byte, blob.Size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// Ensure Store implements the registry ports.
var (
	_ domain.TaskRegistry     = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
