package display

import (
	"encoding/json"
	"testing"
)

func TestJSONLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"leading noise", "Loading profile...\nWARNING: slow\n{\"a\":1}\n", `{"a":1}`},
		{"indented", "  {\"a\":1}  \n", `{"a":1}`},
		{"no json passes through", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(jsonLine([]byte(tt.in))); got != tt.want {
				t.Errorf("jsonLine = %q, want %q", got, tt.want)
			}
		})
	}
}

const hostPayload = `{
  "Monitors": {
    "Count": 2,
    "PrimaryMonitor": "\\\\.\\DISPLAY1",
    "Details": [
      {"Index": 0, "DeviceName": "\\\\.\\DISPLAY1", "IsPrimary": true,
       "Bounds": {"X": 0, "Y": 0, "Width": 2560, "Height": 1440}},
      {"Index": 1, "DeviceName": "\\\\.\\DISPLAY2", "IsPrimary": false,
       "Bounds": {"X": 2560, "Y": 0, "Width": 1920, "Height": 1080}}
    ]
  },
  "Windows": {
    "VisibleCount": 2,
    "Details": [
      {"Handle": 65552, "Title": "Mozilla Firefox", "ProcessName": "firefox", "ProcessId": 1234},
      {"Handle": 65788, "Title": "Terminal", "ProcessName": "WindowsTerminal", "ProcessId": 5678}
    ]
  },
  "VirtualDesktops": {"Supported": false, "Note": "not exposed by the Windows API"}
}`

func TestFillFromHost(t *testing.T) {
	var host hostInfo
	if err := json.Unmarshal([]byte(hostPayload), &host); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	var info Info
	fillFromHost(&info, &host)

	if info.Monitors.Count != 2 {
		t.Errorf("monitor count = %d", info.Monitors.Count)
	}
	if len(info.Monitors.Details) != 2 {
		t.Fatalf("monitor details = %d", len(info.Monitors.Details))
	}
	second := info.Monitors.Details[1]
	if second.Bounds.X != 2560 || second.Bounds.Width != 1920 {
		t.Errorf("second monitor bounds = %+v", second.Bounds)
	}
	if !info.Monitors.Details[0].IsPrimary {
		t.Error("first monitor should be primary")
	}

	if !info.Windows.Supported {
		t.Error("windows should be supported with a host payload")
	}
	if len(info.Windows.Details) != 2 {
		t.Fatalf("window details = %d", len(info.Windows.Details))
	}
	ff := info.Windows.Details[0]
	if ff.Handle != 65552 || ff.ProcessName != "firefox" || ff.ProcessID != 1234 {
		t.Errorf("first window = %+v", ff)
	}
}

func TestMatchWindow(t *testing.T) {
	windows := []Window{
		{Handle: 1, Title: "Notes about firefox bugs", ProcessName: "notepad"},
		{Handle: 2, Title: "Mozilla Firefox", ProcessName: "firefox"},
		{Handle: 3, Title: "Terminal", ProcessName: "WindowsTerminal"},
	}

	tests := []struct {
		name string
		app  string
		want int64
	}{
		{"process name wins over title", "firefox", 2},
		{"case insensitive", "FIREFOX", 2},
		{"title substring", "mozilla", 2},
		{"partial process name", "terminal", 3},
		{"no match", "chrome", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchWindow(windows, tt.app)
			if tt.want == 0 {
				if got != nil {
					t.Errorf("expected no match, got %+v", got)
				}
				return
			}
			if got == nil || got.Handle != tt.want {
				t.Errorf("matchWindow = %+v, want handle %d", got, tt.want)
			}
		})
	}
}
