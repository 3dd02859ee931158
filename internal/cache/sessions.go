package cache

import (
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// Monitoring frames are named <sessionID>_<NNNN>_<timestamp>.<ext> where
// sessionID is 20060102_150405. Anything else in the cache is a single
// capture and belongs to no session.
var sessionFrame = regexp.MustCompile(`^(\d{8}_\d{6})_\d{4}_.*\.(jpg|png)$`)

// SessionInfo summarizes one monitoring session's frames.
type SessionInfo struct {
	ID      string    `json:"session_id"`
	Count   int       `json:"screenshot_count"`
	First   string    `json:"first_screenshot"`
	Last    string    `json:"last_screenshot"`
	TotalKB float64   `json:"total_size_kb"`
	Start   time.Time `json:"start_time"`
	End     time.Time `json:"end_time"`
}

// SessionIDs returns the session IDs present in the store, newest first.
// Session IDs are timestamps, so reverse-lexical order is reverse-
// chronological order.
func (s *Store) SessionIDs() ([]string, error) {
	files, err := s.screenshots()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, f := range files {
		if m := sessionFrame.FindStringSubmatch(filepath.Base(f.path)); m != nil {
			seen[m[1]] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// SessionFrames returns the frame paths of one session in capture order.
func (s *Store) SessionFrames(sessionID string) ([]string, error) {
	files, err := s.screenshots()
	if err != nil {
		return nil, err
	}

	var frames []string
	for _, f := range files {
		base := filepath.Base(f.path)
		if m := sessionFrame.FindStringSubmatch(base); m != nil && m[1] == sessionID {
			frames = append(frames, f.path)
		}
	}
	sort.Strings(frames) // frame counter keeps lexical == capture order
	return frames, nil
}

// Sessions lists up to limit sessions with their stats, newest first.
func (s *Store) Sessions(limit int) ([]SessionInfo, error) {
	ids, err := s.SessionIDs()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	files, err := s.screenshots()
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]fileStat, len(files))
	for _, f := range files {
		byPath[f.path] = f
	}

	var out []SessionInfo
	for _, id := range ids {
		frames, err := s.SessionFrames(id)
		if err != nil || len(frames) == 0 {
			continue
		}
		info := SessionInfo{
			ID:    id,
			Count: len(frames),
			First: filepath.Base(frames[0]),
			Last:  filepath.Base(frames[len(frames)-1]),
		}
		for _, p := range frames {
			st, ok := byPath[p]
			if !ok {
				continue
			}
			info.TotalKB += float64(st.size) / 1024
			if info.Start.IsZero() || st.modTime.Before(info.Start) {
				info.Start = st.modTime
			}
			if st.modTime.After(info.End) {
				info.End = st.modTime
			}
		}
		out = append(out, info)
	}
	return out, nil
}
