// Package ar drives the handshake of an AR preview: resolve the artwork,
// load its 3D asset, then let the user activate the platform AR viewer.
//
// A Session runs the handshake on its own goroutine. Closing a session
// sets a cancelled flag; any result that arrives afterwards is dropped
// without touching the session state.
package ar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/notify"
)

// Phase is the handshake position of a session.
type Phase int

const (
	Loading Phase = iota
	AssetLoading
	Ready
	// Degraded means the artwork resolved but its asset did not load.
	// The view stays up; activation is disabled.
	Degraded
	Error
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case AssetLoading:
		return "asset-loading"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	case Error:
		return "error"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Permission is the camera permission as last observed.
type Permission int

const (
	PermissionUnknown Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	msgNoID          = "No artwork ID provided"
	msgInvalidID     = "Invalid artwork ID"
	msgNotFound      = "Artwork not found"
	msgLoadFailed    = "Failed to load artwork"
	msgAssetLoaded   = "3D model loaded successfully!"
	msgAssetFailed   = "Failed to load 3D model"
	msgLaunching     = "Launching AR..."
	msgCameraDenied  = "Camera access required for AR"
	msgLaunchFailure = "Failed to launch AR"
)

var (
	// ErrNotReady is returned by Activate before the asset has loaded.
	ErrNotReady = errors.New("AR is not ready")

	// ErrClosed is returned by Activate on a closed session.
	ErrClosed = errors.New("AR session closed")
)

// Catalog resolves artwork metadata.
type Catalog interface {
	GetArtwork(ctx context.Context, id int64) (*model.Artwork, error)
}

// AssetLoader fetches the 3D asset of an artwork.
type AssetLoader interface {
	LoadAsset(ctx context.Context, id int64) ([]byte, error)
}

// Stream is an acquired camera stream.
type Stream interface {
	Stop()
}

// Platform is the device side of activation.
type Platform interface {
	// CameraGated reports whether camera capture needs a permission grant.
	CameraGated() bool
	RequestCamera(ctx context.Context) (Stream, error)
	Activate(ctx context.Context, artwork model.Artwork, assetURL string, asset []byte) error
}

// Deps are the collaborators of a session.
type Deps struct {
	Catalog  Catalog
	Assets   AssetLoader
	Platform Platform
	Status   notify.Notifier

	// AssetURL derives the absolute asset URL. Defaults to the server path.
	AssetURL func(id int64) string
	Logger   *slog.Logger
}

// State is a snapshot of a session.
type State struct {
	ID         uuid.UUID
	ArtworkID  int64
	Artwork    *model.Artwork
	Phase      Phase
	Err        string
	AssetURL   string
	Device     Device
	Permission Permission
}

// Session is one open AR view.
type Session struct {
	deps      Deps
	log       *slog.Logger
	cancelled atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}

	mu    sync.Mutex
	state State
	asset []byte
}

type assetResult struct {
	data []byte
	err  error
}

// Open creates a session for rawID and starts its handshake. The device
// classification is derived once from userAgent.
func Open(ctx context.Context, deps Deps, rawID, userAgent string) *Session {
	if deps.AssetURL == nil {
		deps.AssetURL = model.AssetPath
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		deps:   deps,
		cancel: cancel,
		done:   make(chan struct{}),
		state: State{
			ID:     uuid.New(),
			Phase:  Loading,
			Device: DetectDevice(userAgent),
		},
	}
	s.log = deps.Logger.With("session", s.state.ID.String())

	id, err := parseID(rawID)
	if err != nil {
		s.fail(err.Error())
		close(s.done)
		return s
	}
	s.state.ArtworkID = id

	go s.run(ctx, id)
	return s
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, common.Validation(msgNoID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validation(msgInvalidID)
	}
	return id, nil
}

func (s *Session) run(ctx context.Context, id int64) {
	defer close(s.done)

	a, err := s.deps.Catalog.GetArtwork(ctx, id)
	if err != nil {
		msg := common.Message(err, msgLoadFailed)
		if errors.Is(err, common.ErrNotFound) {
			msg = msgNotFound
		}
		if s.update(func(st *State) { st.Phase, st.Err = Error, msg }) {
			s.log.Warn("AR artwork lookup failed", "artwork_id", id, "error", err)
		}
		return
	}

	assetURL := s.deps.AssetURL(id)
	if !s.update(func(st *State) { st.Artwork, st.AssetURL, st.Phase = a, assetURL, AssetLoading }) {
		return
	}

	results := make(chan assetResult, 1)
	go func() {
		data, err := s.deps.Assets.LoadAsset(ctx, id)
		results <- assetResult{data: data, err: err}
	}()

	var res assetResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return
	}

	if res.err != nil {
		if s.update(func(st *State) { st.Phase = Degraded }) {
			s.log.Warn("AR asset load failed", "artwork_id", id, "error", res.err)
			s.deps.Status.Show(msgAssetFailed, notify.KindError)
		}
		return
	}
	if s.update(func(st *State) { st.Phase = Ready; s.asset = res.data }) {
		s.log.Info("AR asset loaded", "artwork_id", id, "bytes", len(res.data))
		s.deps.Status.Show(msgAssetLoaded, notify.KindSuccess)
	}
}

// update applies fn to the state unless the session was closed. It
// reports whether fn ran.
func (s *Session) update(fn func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled.Load() {
		s.log.Debug("discarding late result of closed session", "artwork_id", s.state.ArtworkID)
		return false
	}
	fn(&s.state)
	return true
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	s.state.Phase = Error
	s.state.Err = msg
	s.mu.Unlock()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Artwork != nil {
		a := *st.Artwork
		st.Artwork = &a
	}
	return st
}

// Guidance is the advisory instruction line for this session's device.
func (s *Session) Guidance() string {
	return Guidance(s.state.Device)
}

// Done is closed when the handshake has settled or was abandoned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the handshake settles and returns the final state.
func (s *Session) Wait(ctx context.Context) (State, error) {
	select {
	case <-s.done:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Close tears the session down. Pending results are discarded. Close is
// safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancelled.Swap(true) {
		s.mu.Unlock()
		return
	}
	s.asset = nil
	s.mu.Unlock()
	s.cancel()
}

// Activate requests the camera (when the platform gates it) and then
// launches the platform AR viewer. Failures are notified and returned
// but never move the session out of Ready.
func (s *Session) Activate(ctx context.Context) error {
	if s.cancelled.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	st := s.state
	asset := s.asset
	s.mu.Unlock()
	if st.Phase != Ready || st.Artwork == nil {
		return ErrNotReady
	}

	s.deps.Status.Show(msgLaunching, notify.KindInfo)

	if s.deps.Platform.CameraGated() {
		stream, err := s.deps.Platform.RequestCamera(ctx)
		if err != nil {
			s.setPermission(PermissionDenied)
			s.log.Info("camera permission denied", "error", err)
			s.deps.Status.Show(msgCameraDenied, notify.KindError)
			return common.Permission(msgCameraDenied, err)
		}
		s.setPermission(PermissionGranted)
		// The stream only primes the permission; nothing is captured.
		stream.Stop()
	}

	if err := s.launch(ctx, *st.Artwork, st.AssetURL, asset); err != nil {
		s.log.Error("AR activation failed", "artwork_id", st.ArtworkID, "error", err)
		msg := msgLaunchFailure
		if m := common.Message(err, ""); m != "" {
			msg += ": " + m
		}
		s.deps.Status.Show(msg, notify.KindError)
		return fmt.Errorf("activating AR: %w", err)
	}
	s.log.Info("AR activated", "artwork_id", st.ArtworkID)
	return nil
}

func (s *Session) launch(ctx context.Context, a model.Artwork, assetURL string, asset []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return s.deps.Platform.Activate(ctx, a, assetURL, asset)
}

func (s *Session) setPermission(p Permission) {
	s.mu.Lock()
	s.state.Permission = p
	s.mu.Unlock()
}
