package browser

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/atheor/gowebtest/internal/logging"
)

// ChromedpSession drives a real headless Chrome via chromedp. One session
// owns one browser context; it is not safe for concurrent use.
type ChromedpSession struct {
	ctx       context.Context
	cancel    context.CancelFunc
	allocStop context.CancelFunc
	idleAfter time.Duration
	logger    logging.Logger
}

// NewChromedpSession launches a browser according to cfg. The returned
// session must be Closed to release the Chrome process.
func NewChromedpSession(cfg Config, logger logging.Logger) (*ChromedpSession, error) {
	componentLogger := logger.With(logging.Field{Key: "backend", Value: BackendChromedp})

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", cfg.Headless))
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocStop := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so construction fails fast when Chrome is
	// unavailable.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocStop()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	componentLogger.Info("created chromedp session",
		logging.Field{Key: "headless", Value: cfg.Headless})

	return &ChromedpSession{
		ctx:       ctx,
		cancel:    cancel,
		allocStop: allocStop,
		idleAfter: 500 * time.Millisecond,
		logger:    componentLogger,
	}, nil
}

// run executes chromedp actions on the session's browser context while
// honoring cancellation of the caller's context.
func (s *ChromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// waitNetworkIdle returns a channel that receives once no network request
// has been in flight for idleAfter.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) chan struct{} {
	idleChan := make(chan struct{}, 1)
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() {
					idleChan <- struct{}{}
				})
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	// Pages with no subresource traffic never fire loading events; arm the
	// timer once so the idle signal still arrives.
	startTimer()

	return idleChan
}

// Navigate loads url and blocks until the page load event fires and the
// network has been idle briefly, so dynamic pages settle before the first
// element check.
func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("navigating", logging.Field{Key: "url", Value: url})

	idleChan := waitNetworkIdle(s.ctx, s.idleAfter)

	if err := s.run(ctx, network.Enable(), chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	select {
	case <-idleChan:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (s *ChromedpSession) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("get title: %w", err)
	}
	return title, nil
}

func (s *ChromedpSession) CurrentURL(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

func (s *ChromedpSession) Reload(ctx context.Context) error {
	if err := s.run(ctx, chromedp.Reload()); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// historyStep moves by offset entries in the browser's navigation history.
func historyStep(offset int) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		cur, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return err
		}
		next := int(cur) + offset
		if next < 0 || next >= len(entries) {
			return ErrNoHistory
		}
		return page.NavigateToHistoryEntry(entries[next].ID).Do(ctx)
	}
}

func (s *ChromedpSession) Back(ctx context.Context) error {
	if err := s.run(ctx, historyStep(-1)); err != nil {
		return fmt.Errorf("navigate back: %w", err)
	}
	return nil
}

func (s *ChromedpSession) Forward(ctx context.Context) error {
	if err := s.run(ctx, historyStep(1)); err != nil {
		return fmt.Errorf("navigate forward: %w", err)
	}
	return nil
}

// finderJS produces a JS expression evaluating to the first element matched
// by loc, or null.
func finderJS(loc Locator) string {
	if loc.Strategy == ByXPath {
		return fmt.Sprintf(
			`document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue`,
			strconv.Quote(loc.Value))
	}
	sel, _ := loc.Selector()
	return fmt.Sprintf(`document.querySelector(%s)`, strconv.Quote(sel))
}

func (s *ChromedpSession) evalBool(ctx context.Context, expr string) (bool, error) {
	var out bool
	if err := s.run(ctx, chromedp.Evaluate(expr, &out)); err != nil {
		return false, err
	}
	return out, nil
}

func (s *ChromedpSession) Exists(ctx context.Context, loc Locator) (bool, error) {
	return s.evalBool(ctx, fmt.Sprintf(`(%s) !== null`, finderJS(loc)))
}

func (s *ChromedpSession) Visible(ctx context.Context, loc Locator) (bool, error) {
	expr := fmt.Sprintf(`(function() {
		const el = %s;
		if (!el) return false;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		const rect = el.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0;
	})()`, finderJS(loc))
	return s.evalBool(ctx, expr)
}

// clickableJS checks visible AND enabled AND topmost at the element center.
func clickableJS(loc Locator) string {
	return fmt.Sprintf(`(function() {
		const el = %s;
		if (!el) return false;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		const rect = el.getBoundingClientRect();
		if (rect.width <= 0 || rect.height <= 0) return false;
		if (el.disabled) return false;
		const cx = rect.left + rect.width / 2;
		const cy = rect.top + rect.height / 2;
		const top = document.elementFromPoint(cx, cy);
		return top === el || el.contains(top) || (top !== null && top.contains(el));
	})()`, finderJS(loc))
}

func (s *ChromedpSession) Clickable(ctx context.Context, loc Locator) (bool, error) {
	return s.evalBool(ctx, clickableJS(loc))
}

// queryOpts maps a locator to a chromedp selector and query option.
func queryOpts(loc Locator) (string, chromedp.QueryOption) {
	if loc.Strategy == ByXPath {
		return loc.Value, chromedp.BySearch
	}
	sel, _ := loc.Selector()
	return sel, chromedp.ByQuery
}

// Click hit-tests the element center before dispatching: if another element
// would receive the click, ErrClickIntercepted is returned instead of
// silently clicking the overlay.
func (s *ChromedpSession) Click(ctx context.Context, loc Locator) error {
	exists, err := s.Exists(ctx, loc)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("click %s: %w", loc, ErrNoElement)
	}

	clickable, err := s.Clickable(ctx, loc)
	if err != nil {
		return err
	}
	if !clickable {
		return fmt.Errorf("click %s: %w", loc, ErrClickIntercepted)
	}

	sel, opt := queryOpts(loc)
	if err := s.run(ctx, chromedp.Click(sel, opt)); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

func (s *ChromedpSession) ScriptClick(ctx context.Context, loc Locator) error {
	expr := fmt.Sprintf(`(function() {
		const el = %s;
		if (!el) return false;
		el.click();
		return true;
	})()`, finderJS(loc))
	clicked, err := s.evalBool(ctx, expr)
	if err != nil {
		return fmt.Errorf("script click %s: %w", loc, err)
	}
	if !clicked {
		return fmt.Errorf("script click %s: %w", loc, ErrNoElement)
	}
	return nil
}

func (s *ChromedpSession) SetText(ctx context.Context, loc Locator, text string) error {
	sel, opt := queryOpts(loc)
	if err := s.run(ctx, chromedp.Clear(sel, opt), chromedp.SendKeys(sel, text, opt)); err != nil {
		return fmt.Errorf("set text on %s: %w", loc, err)
	}
	return nil
}

func (s *ChromedpSession) SendText(ctx context.Context, loc Locator, text string) error {
	sel, opt := queryOpts(loc)
	if err := s.run(ctx, chromedp.SendKeys(sel, text, opt)); err != nil {
		return fmt.Errorf("send text to %s: %w", loc, err)
	}
	return nil
}

func (s *ChromedpSession) Clear(ctx context.Context, loc Locator) error {
	sel, opt := queryOpts(loc)
	if err := s.run(ctx, chromedp.Clear(sel, opt)); err != nil {
		return fmt.Errorf("clear %s: %w", loc, err)
	}
	return nil
}

func (s *ChromedpSession) Text(ctx context.Context, loc Locator) (string, error) {
	expr := fmt.Sprintf(`(function() {
		const el = %s;
		return el === null ? null : el.innerText;
	})()`, finderJS(loc))
	var out *string
	if err := s.run(ctx, chromedp.Evaluate(expr, &out)); err != nil {
		return "", fmt.Errorf("get text of %s: %w", loc, err)
	}
	if out == nil {
		return "", fmt.Errorf("get text of %s: %w", loc, ErrNoElement)
	}
	return *out, nil
}

func (s *ChromedpSession) Attribute(ctx context.Context, loc Locator, name string) (string, bool, error) {
	expr := fmt.Sprintf(`(function() {
		const el = %s;
		return el === null ? null : el.getAttribute(%s);
	})()`, finderJS(loc), strconv.Quote(name))
	var out *string
	if err := s.run(ctx, chromedp.Evaluate(expr, &out)); err != nil {
		return "", false, fmt.Errorf("get attribute %q of %s: %w", name, loc, err)
	}
	if out == nil {
		return "", false, nil
	}
	return *out, true, nil
}

func (s *ChromedpSession) Evaluate(ctx context.Context, expr string, out any) error {
	if err := s.run(ctx, chromedp.Evaluate(expr, out)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (s *ChromedpSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

func (s *ChromedpSession) Close() error {
	s.logger.Info("closing chromedp session")
	s.cancel()
	s.allocStop()
	return nil
}
