// Package media provides the media player application: a playlist with
// play/pause/seek state, one independent player per open window.
package media

import (
	"errors"
	"fmt"
	"sync"

	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/shared/types"
)

// AppID is the media player's registry identifier.
const AppID = "media"

var (
	// ErrPlayerNotFound is returned for operations on an unknown player.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrEmptyPlaylist is returned when playback is requested with no tracks.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrSeekOutOfRange is returned for seeks past the current track.
	ErrSeekOutOfRange = errors.New("seek position out of range")
)

// Track is a playlist entry.
type Track struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
}

// State is a snapshot of one player.
type State struct {
	WindowID string  `json:"window_id"`
	Playlist []Track `json:"playlist"`
	Current  int     `json:"current"`
	Position int     `json:"position"`
	Playing  bool    `json:"playing"`
}

type player struct {
	playlist []Track
	current  int
	position int
	playing  bool
}

// Service manages one player per open media window.
type Service struct {
	mu      sync.RWMutex
	players map[string]*player
}

// WindowManager is the slice of the window manager the media service
// uses to track window lifetimes.
type WindowManager interface {
	registry.WindowCreator
	OnClose(fn func(windowID string))
}

// NewService creates the media service. Player state is dropped when
// its window closes.
func NewService(wm WindowManager) *Service {
	s := &Service{players: make(map[string]*player)}
	wm.OnClose(func(windowID string) {
		s.mu.Lock()
		delete(s.players, windowID)
		s.mu.Unlock()
	})
	return s
}

// Register adds the media player to the app registry. Every open
// creates an independent player window.
func (s *Service) Register(reg *registry.Registry, windows registry.WindowCreator) error {
	return reg.Register(&types.Registration{
		ID:             AppID,
		Name:           "Media Player",
		Icon:           "media.png",
		Category:       "entertainment",
		SingleInstance: false,
		Launch: func() (*types.Window, error) {
			content := map[string]interface{}{"app": AppID}
			win := windows.Create("Media Player", content, 560, 380)
			s.mu.Lock()
			s.players[win.ID] = &player{current: -1}
			s.mu.Unlock()
			return win, nil
		},
	})
}

// Enqueue appends tracks to a player's playlist.
func (s *Service) Enqueue(windowID string, tracks ...Track) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	p.playlist = append(p.playlist, tracks...)
	if p.current < 0 && len(p.playlist) > 0 {
		p.current = 0
	}
	return snapshot(windowID, p), nil
}

// Play starts or resumes playback of the current track.
func (s *Service) Play(windowID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	if len(p.playlist) == 0 {
		return nil, ErrEmptyPlaylist
	}
	p.playing = true
	return snapshot(windowID, p), nil
}

// Pause suspends playback, keeping the position.
func (s *Service) Pause(windowID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	p.playing = false
	return snapshot(windowID, p), nil
}

// Seek moves the playback position within the current track.
func (s *Service) Seek(windowID string, position int) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	if len(p.playlist) == 0 {
		return nil, ErrEmptyPlaylist
	}
	track := p.playlist[p.current]
	if position < 0 || position > track.Duration {
		return nil, fmt.Errorf("%w: %d of %d", ErrSeekOutOfRange, position, track.Duration)
	}
	p.position = position
	return snapshot(windowID, p), nil
}

// Next advances to the following track, wrapping to the start.
func (s *Service) Next(windowID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	if len(p.playlist) == 0 {
		return nil, ErrEmptyPlaylist
	}
	p.current = (p.current + 1) % len(p.playlist)
	p.position = 0
	return snapshot(windowID, p), nil
}

// State returns a snapshot of one player.
func (s *Service) State(windowID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, windowID)
	}
	return snapshot(windowID, p), nil
}

func snapshot(windowID string, p *player) *State {
	return &State{
		WindowID: windowID,
		Playlist: append([]Track(nil), p.playlist...),
		Current:  p.current,
		Position: p.position,
		Playing:  p.playing,
	}
}
