package notify

import "testing"

func TestLoadPreferencesEnvOverrides(t *testing.T) {
	t.Setenv("PINPOINT_NOTIFY_TITLE", "Custom Title")
	t.Setenv("PINPOINT_NOTIFY_EXPORT_TEXT", "Wrote %s")
	t.Setenv("PINPOINT_NOTIFY_SAVE_TEXT", "")

	prefs := LoadPreferences()
	if prefs.Title != "Custom Title" {
		t.Errorf("Title = %q, want %q", prefs.Title, "Custom Title")
	}
	if got := prefs.Events[EventExport].Template; got != "Wrote %s" {
		t.Errorf("export template = %q, want %q", got, "Wrote %s")
	}
	if got := prefs.Events[EventSave].Template; got != "Saved %s" {
		t.Errorf("save template = %q, want default %q", got, "Saved %s")
	}
}

func TestNotifierDisabledByDefault(t *testing.T) {
	n := New(DefaultPreferences())
	for _, event := range []Event{EventExport, EventSave, EventCopy} {
		if n.enabledFor(event) {
			t.Errorf("event %s enabled by default", event)
		}
	}
	n.Enable(EventExport, true)
	if !n.enabledFor(EventExport) {
		t.Error("EventExport still disabled after Enable")
	}
	n.Enable(EventExport, false)
	if n.enabledFor(EventExport) {
		t.Error("EventExport still enabled after disable")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	if n.enabledFor(EventSave) {
		t.Error("nil notifier reported an enabled event")
	}
	n.Export("out.csv")
	n.Copy("")
}
