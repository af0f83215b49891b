package embed

// HostDelegate is the set of event sinks the embedded engine drives. The
// bridge translates the engine's C callbacks into calls on this interface;
// one method per event kind.
//
// OnAllowNavigation is the only method with a return value and may block the
// engine's scheduling thread, so implementations must keep it fast and
// side-effect-light. Flush and MakeCurrent are delivered through the bridge's
// render-thread queue and therefore always run on the render thread. Wakeup
// may arrive on any thread and must never block.
type HostDelegate interface {
	// OnLoadStarted is called when the engine begins loading a page.
	OnLoadStarted()

	// OnLoadEnded is called when the engine finishes loading a page.
	OnLoadEnded()

	// OnHistoryChanged reports the new back/forward navigation availability.
	//
	// Parameters:
	//   - canGoBack: true if backward navigation is possible
	//   - canGoForward: true if forward navigation is possible
	OnHistoryChanged(canGoBack, canGoForward bool)

	// OnShutdownComplete is called once the engine has fully shut down.
	OnShutdownComplete()

	// OnAlert is called when page script raises an alert.
	//
	// Parameters:
	//   - text: the alert message
	OnAlert(text string)

	// OnTitleChanged reports the new page title.
	//
	// Parameters:
	//   - title: the new title
	OnTitleChanged(title string)

	// OnURLChanged reports the new page URL.
	//
	// Parameters:
	//   - url: the new URL
	OnURLChanged(url string)

	// OnAllowNavigation decides synchronously whether a navigation proceeds.
	// A false return is a valid outcome (blocked by host policy), not an error.
	//
	// Parameters:
	//   - url: the navigation target
	//
	// Returns:
	//   - bool: true to allow the navigation
	OnAllowNavigation(url string) bool

	// OnAnimatingChanged reports whether the page is currently animating, so
	// the host can switch between continuous and on-demand frame pacing.
	//
	// Parameters:
	//   - animating: true while the page animates
	OnAnimatingChanged(animating bool)

	// Flush is called when the engine has composited a frame and wants it
	// presented. Runs on the render thread.
	Flush()

	// MakeCurrent is called when the engine needs the host's GL context bound.
	// Runs on the render thread.
	MakeCurrent()

	// Wakeup asks the host event loop to run an iteration so PerformUpdates
	// gets called. May arrive on any thread; must not block.
	Wakeup()
}
