package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/reelpilot-org/reelpilot/pkg/types"
)

// FSStore implements Store using the local file system, one JSON file per
// video. Crash consistency depends on individual atomic writes.
// Directory structure:
// rootDir/
//
//	└── videos/
//	    └── {id}.json
type FSStore struct {
	rootDir string
	mu      sync.RWMutex // Global lock for simplified thread-safety

	videosDir string
}

func NewFSStore(rootDir string) *FSStore {
	return &FSStore{
		rootDir:   rootDir,
		videosDir: filepath.Join(rootDir, "videos"),
	}
}

func (s *FSStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.videosDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.videosDir, err)
	}
	return nil
}

func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) SaveVideo(ctx context.Context, video *types.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	video.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(video, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal video: %w", err)
	}

	return s.atomicWrite(s.videoPath(video.ID), data)
}

func (s *FSStore) GetVideo(ctx context.Context, id string) (*types.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.videoPath(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var video types.Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, fmt.Errorf("failed to parse %s.json: %w", id, err)
	}
	return &video, nil
}

// ListVideos returns all videos sorted by creation time (newest first).
func (s *FSStore) ListVideos(ctx context.Context) ([]types.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.videosDir)
	if os.IsNotExist(err) {
		return []types.Video{}, nil
	}
	if err != nil {
		return nil, err
	}

	videos := make([]types.Video, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.videosDir, entry.Name()))
		if err != nil {
			continue // Skip unreadable
		}
		var video types.Video
		if err := json.Unmarshal(data, &video); err == nil {
			videos = append(videos, video)
		}
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})

	return videos, nil
}

func (s *FSStore) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.videoPath(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

func (s *FSStore) videoPath(id string) string {
	return filepath.Join(s.videosDir, id+".json")
}

func (s *FSStore) atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return os.Rename(tmpPath, path)
}

var _ Store = (*FSStore)(nil)
