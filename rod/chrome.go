package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/engram"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSnapshotsPerBrowser is the number of snapshotted chat pages after
// which Chrome is restarted.
const DefaultSnapshotsPerBrowser = 75

// chrome owns the headless Chrome process behind a Fetcher.
//
// Chat applications are large single-page apps and Chrome's heap does not
// return to its baseline after their tabs close, so the process is
// restarted once limit pages have been snapshotted. A restart only happens
// while no tab is open, so in-flight captures are never cut off.
type chrome struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   bool

	limit     int64
	open      int
	sinceLast int64 // snapshots since the last restart
	snapshots int64
	restarts  int
}

func launchChrome(limit int64) (*chrome, error) {
	c := &chrome{limit: limit}
	if err := c.launch(); err != nil {
		return nil, err
	}
	return c, nil
}

// page opens a new tab, restarting Chrome first when it is due.
func (c *chrome) page() (*rod.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, engram.Errorf(engram.EINVALID, "browser is closed")
	}
	if c.limit > 0 && c.sinceLast >= c.limit && c.open == 0 {
		c.restart()
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	c.open++
	return page, nil
}

// release closes a tab opened by page. Only tabs whose layout was
// snapshotted count toward the restart limit.
func (c *chrome) release(page *rod.Page, snapshotted bool) {
	_ = page.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.open--
	if snapshotted {
		c.sinceLast++
		c.snapshots++
	}
}

func (c *chrome) counts() (snapshots int64, restarts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots, c.restarts
}

func (c *chrome) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.shutdown()
}

func (c *chrome) pid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.launcher == nil {
		return 0
	}
	return c.launcher.PID()
}

// launch starts Chrome with flags that keep background tabs rendering.
// Must be called with mu held or before c is shared.
func (c *chrome) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	c.browser = browser
	c.launcher = l
	return nil
}

// restart replaces Chrome with a fresh process. When the new process fails
// to start the old one stays in use and the restart is retried on the next
// page. Must be called with mu held.
func (c *chrome) restart() {
	oldBrowser, oldLauncher := c.browser, c.launcher
	if err := c.launch(); err != nil {
		c.browser, c.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	c.sinceLast = 0
	c.restarts++
}

// shutdown stops Chrome. Must be called with mu held.
func (c *chrome) shutdown() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher = nil
	}
	return err
}
