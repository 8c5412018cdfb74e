package kinetic

// Subsystem is anything mounted onto a region that holds listeners or
// resources. Stop must be safe to call more than once.
type Subsystem interface {
	Stop()
}

// Mount ties s to r so that s.Stop runs when r is removed from the document.
// If r is already removed, s is stopped immediately. Subsystems that can be
// stopped before their region goes away call unmount to drop the hook.
func Mount(r *Region, s Subsystem) (unmount func()) {
	return r.OnRemove(s.Stop)
}

// StopFunc adapts a plain function to Subsystem.
type StopFunc func()

// Stop calls f.
func (f StopFunc) Stop() {
	f()
}
