package player

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/progress"
)

const (
	SeekStep       = 10.0
	VolumeStep     = 0.1
	ProgressBucket = 5.0
)

var (
	ErrNotOpen       = errors.New("player is not open")
	ErrUnknownLesson = errors.New("lesson is not in the playlist")
	ErrNotPlayable   = errors.New("lesson has no video or pdf")
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Playing
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

type Key string

const (
	KeySpace  Key = " "
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyMute   Key = "m"
	KeyFull   Key = "f"
	KeyEscape Key = "Escape"
)

// Ticket identifies one lesson load. Loaded ignores tickets from an earlier
// selection or from before Close.
type Ticket struct {
	Generation uint64
	Lesson     models.Lesson
}

// Status is a point-in-time view of the player.
type Status struct {
	Open       bool
	State      State
	Lesson     *models.Lesson
	Position   float64
	Duration   float64
	Volume     float64
	Muted      bool
	Fullscreen bool
}

type Player struct {
	mu     sync.Mutex
	userID models.ID
	store  progress.Store
	logger *slog.Logger
	now    func() time.Time

	playlist   []models.Lesson
	open       bool
	index      int
	state      State
	generation uint64

	position   float64
	duration   float64
	bucket     int
	volume     float64
	muted      bool
	fullscreen bool
}

func New(userID models.ID, store progress.Store, logger *slog.Logger) *Player {
	return NewWithClock(userID, store, logger, time.Now)
}

func NewWithClock(userID models.ID, store progress.Store, logger *slog.Logger, now func() time.Time) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		userID: userID,
		store:  store,
		logger: logger,
		now:    now,
		index:  -1,
		volume: 1,
	}
}

// Open loads a course's playlist and selects the initial lesson: the
// requested one when it has content, otherwise the first playable lesson.
// The returned ticket is false when nothing in the course is playable.
func (p *Player) Open(modules []models.Module, initial models.ID) (Ticket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playlist = BuildPlaylist(modules)
	p.open = true
	p.state = Idle
	p.index = -1
	p.generation++

	start := Playable(p.playlist)
	if initial != "" {
		if i := p.indexOf(initial); i >= 0 && p.playlist[i].HasContent() {
			start = i
		}
	}
	if start < 0 {
		return Ticket{}, false
	}
	return p.selectLocked(start), true
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = false
	p.fullscreen = false
	p.state = Idle
	p.index = -1
	p.generation++
}

func (p *Player) Playlist() []models.Lesson {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Lesson, len(p.playlist))
	copy(out, p.playlist)
	return out
}

// Select moves to Loading for the given lesson.
func (p *Player) Select(lessonID models.ID) (Ticket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return Ticket{}, ErrNotOpen
	}
	i := p.indexOf(lessonID)
	if i < 0 {
		return Ticket{}, ErrUnknownLesson
	}
	if !p.playlist[i].HasContent() {
		return Ticket{}, ErrNotPlayable
	}
	return p.selectLocked(i), nil
}

// Loaded completes a load started by Select, Next, Prev, End or Open and
// resumes from the stored position. It reports false for stale tickets.
func (p *Player) Loaded(ctx context.Context, t Ticket, duration float64) bool {
	if !p.current(t) {
		return false
	}

	var resume float64
	if p.store != nil {
		saved, err := p.store.Load(ctx, p.userID, t.Lesson.ID)
		switch {
		case err == nil:
			resume = saved.CurrentTime
		case !errors.Is(err, progress.ErrNotFound):
			p.logger.WarnContext(ctx, "Failed to load lesson progress", "lesson_id", t.Lesson.ID, "error", err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || t.Generation != p.generation {
		return false
	}
	p.duration = math.Max(duration, 0)
	p.position = p.bound(resume)
	p.bucket = bucketOf(p.position)
	p.state = Ready
	return true
}

func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Ready, Paused:
		p.state = Playing
		return true
	default:
		return false
	}
}

func (p *Player) Pause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return false
	}
	p.state = Paused
	return true
}

func (p *Player) TogglePlay() bool {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()
	if state == Playing {
		return p.Pause()
	}
	return p.Play()
}

// Next selects the following lesson with content, skipping content-less ones.
func (p *Player) Next() (Ticket, bool) {
	return p.step(1)
}

func (p *Player) Prev() (Ticket, bool) {
	return p.step(-1)
}

// End marks the current lesson finished and advances to the next playable
// lesson when one exists. Otherwise the player stays Ended.
func (p *Player) End() (Ticket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || p.index < 0 {
		return Ticket{}, false
	}
	p.state = Ended
	p.position = p.duration
	next := nextPlayable(p.playlist, p.index, 1)
	if next < 0 {
		return Ticket{}, false
	}
	return p.selectLocked(next), true
}

func (p *Player) Seek(delta float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = p.bound(p.position + delta)
	return p.position
}

// SetDuration applies a duration that became known after load, such as from
// late media metadata, and clamps the position to it.
func (p *Player) SetDuration(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || p.index < 0 || p.state == Loading {
		return
	}
	p.duration = math.Max(seconds, 0)
	p.position = p.bound(p.position)
	p.bucket = bucketOf(p.position)
}

func (p *Player) SetVolume(delta float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Round(clamp(p.volume+delta, 0, 1)*100) / 100
	return p.volume
}

func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) ToggleFullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullscreen = !p.fullscreen
	return p.fullscreen
}

// Escape leaves fullscreen. It reports whether anything changed.
func (p *Player) Escape() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fullscreen {
		return false
	}
	p.fullscreen = false
	return true
}

// HandleKey applies the keyboard contract. Keys are ignored while closed.
func (p *Player) HandleKey(key Key) bool {
	p.mu.Lock()
	open := p.open
	p.mu.Unlock()
	if !open {
		return false
	}

	switch key {
	case KeySpace:
		p.TogglePlay()
	case KeyLeft:
		p.Seek(-SeekStep)
	case KeyRight:
		p.Seek(SeekStep)
	case KeyUp:
		p.SetVolume(VolumeStep)
	case KeyDown:
		p.SetVolume(-VolumeStep)
	case KeyMute:
		p.ToggleMute()
	case KeyFull:
		p.ToggleFullscreen()
	case KeyEscape:
		return p.Escape()
	default:
		return false
	}
	return true
}

// ReportTime records the playback position and persists it whenever the
// position crosses into a different 5 second bucket.
func (p *Player) ReportTime(ctx context.Context, seconds float64) error {
	p.mu.Lock()
	if !p.open || p.index < 0 || p.state == Loading {
		p.mu.Unlock()
		return nil
	}
	p.position = p.bound(seconds)
	b := bucketOf(p.position)
	if b == p.bucket {
		p.mu.Unlock()
		return nil
	}
	p.bucket = b
	record := models.NewLessonProgress(p.userID, p.playlist[p.index].ID, p.position, p.duration, p.now())
	p.mu.Unlock()

	if p.store == nil {
		return nil
	}
	return p.store.Save(ctx, record)
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Status{
		Open:       p.open,
		State:      p.state,
		Position:   p.position,
		Duration:   p.duration,
		Volume:     p.volume,
		Muted:      p.muted,
		Fullscreen: p.fullscreen,
	}
	if p.index >= 0 {
		l := p.playlist[p.index]
		s.Lesson = &l
	}
	return s
}

func (p *Player) step(dir int) (Ticket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open || p.index < 0 {
		return Ticket{}, false
	}
	i := nextPlayable(p.playlist, p.index, dir)
	if i < 0 {
		return Ticket{}, false
	}
	return p.selectLocked(i), true
}

func (p *Player) selectLocked(i int) Ticket {
	p.index = i
	p.state = Loading
	p.position = 0
	p.duration = 0
	p.bucket = 0
	p.generation++
	return Ticket{Generation: p.generation, Lesson: p.playlist[i]}
}

func (p *Player) current(t Ticket) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open && t.Generation == p.generation
}

func (p *Player) indexOf(id models.ID) int {
	for i, l := range p.playlist {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// bound clamps to the known duration. While the duration is unknown (zero)
// only negatives are rejected.
func (p *Player) bound(seconds float64) float64 {
	if p.duration <= 0 {
		return math.Max(seconds, 0)
	}
	return clamp(seconds, 0, p.duration)
}

func bucketOf(seconds float64) int {
	return int(math.Floor(seconds / ProgressBucket))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
