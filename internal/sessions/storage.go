package sessions

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var DefaultStoragePath = "~/.config/spectra/"

const storageVersion = "1.0"

// LocalStorage is a small durable key/value store. Values survive process
// restarts.
type LocalStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

type storageDocument struct {
	Version   string            `yaml:"version"`
	Timestamp time.Time         `yaml:"timestamp"`
	Items     map[string]string `yaml:"items"`
}

func (d storageDocument) clone() storageDocument {
	items := make(map[string]string, len(d.Items))
	for key, value := range d.Items {
		items[key] = value
	}
	d.Items = items
	return d
}

func newStorageDocument() storageDocument {
	return storageDocument{
		Version:   storageVersion,
		Timestamp: time.Now().UTC(),
		Items:     make(map[string]string),
	}
}

// FileStorage keeps one YAML document per API host, readable only by the
// owner.
type FileStorage struct {
	lock     sync.Mutex
	path     string
	document storageDocument
}

// NewFileStorage opens (or creates) the storage file for apiURL inside dir
// and loads its current contents.
func NewFileStorage(dir string, apiURL string) (*FileStorage, error) {

	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	storage := &FileStorage{
		path:     filepath.Join(dir, fmt.Sprintf("%s.yaml", StorageName(apiURL))),
		document: newStorageDocument(),
	}

	if err := storage.Load(); err != nil {
		return nil, err
	}

	return storage, nil
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	value, ok := s.document.Items[key]
	return value, ok, nil
}

func (s *FileStorage) SetItem(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"path": s.path,
		"key":  key,
	}).Debugln("Writing storage item")

	document := s.document.clone()
	document.Items[key] = value
	return s.commit(document)
}

func (s *FileStorage) RemoveItem(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"path": s.path,
		"key":  key,
	}).Debugln("Removing storage item")

	document := s.document.clone()
	delete(document.Items, key)
	return s.commit(document)
}

// Load re-reads the file. Empty or unparsable files are treated as empty
// storage.
func (s *FileStorage) Load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	logrus.Debugln("Loading local storage from:", s.path)

	file, err := s.open()
	if err != nil {
		return err
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return err
	}

	if fileInfo.Size() == 0 {
		s.document = newStorageDocument()
		return nil
	}

	var document storageDocument
	if err := yaml.NewDecoder(file).Decode(&document); err != nil {
		logrus.WithError(err).Errorf("Failed to parse local storage %s, reinitializing", s.path)
		s.document = newStorageDocument()
		return nil
	}

	if document.Items == nil {
		document.Items = make(map[string]string)
	}

	s.document = document
	return nil
}

// commit writes document and makes it current only once the write has
// succeeded.
func (s *FileStorage) commit(document storageDocument) error {

	file, err := s.open()
	if err != nil {
		return err
	}
	defer file.Close()

	// Truncate the file to ensure clean write
	if err := file.Truncate(0); err != nil {
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}

	document.Timestamp = time.Now().UTC()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("failed to write local storage: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to write local storage: %w", err)
	}

	s.document = document
	return nil
}

func (s *FileStorage) open() (*os.File, error) {
	// Only allow read/write access to the owner
	file, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}
	return file, nil
}

// StorageName derives the storage file name from the API base URL so that
// each server keeps its own session.
func StorageName(apiURL string) string {
	parsed, err := url.Parse(apiURL)
	if err != nil || len(parsed.Hostname()) == 0 {
		return "default"
	}

	name := parsed.Hostname()
	if port := parsed.Port(); len(port) > 0 {
		name = name + "_" + port
	}
	return name
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// MemoryStorage is a LocalStorage that lives only as long as the process.
type MemoryStorage struct {
	lock  sync.Mutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]string),
	}
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.items, key)
	return nil
}
