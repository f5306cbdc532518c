package bufstore

import (
	"strconv"
	"strings"
)

// GetInteger reads an integer property off b, covering the subset that
// does not require window-tree or hook-registry context (num_displayed is
// read from b.VisibleCount; text_search counts live on the caller that owns
// that subsystem).
func (b *Buffer) GetInteger(prop string) (int64, bool) {
	switch prop {
	case "number":
		return int64(b.Number), true
	case "type":
		return int64(b.Kind), true
	case "notify":
		return int64(b.NotifyLevel), true
	case "num_displayed":
		return int64(b.VisibleCount), true
	case "active":
		return int64(b.Active), true
	case "hidden":
		return boolToInt(b.Hidden), true
	case "zoomed":
		return boolToInt(b.Zoomed), true
	case "print_hooks_enabled":
		return boolToInt(b.PrintHooksEnabled), true
	case "day_change":
		return boolToInt(b.DayChangeEnabled), true
	case "clear":
		return boolToInt(b.Clearable), true
	case "filter":
		return boolToInt(b.FilterEnabled), true
	case "closing":
		return boolToInt(b.Closing), true
	case "opening":
		return boolToInt(b.Opening), true
	case "lines_hidden":
		return int64(b.Lines.LinesHidden), true
	case "prefix_max_length":
		return int64(b.Lines.PrefixMaxLength), true
	case "time_for_each_line":
		return boolToInt(b.TimeForEachLine), true
	case "nicklist":
		return boolToInt(b.NicklistEnabled), true
	case "nicklist_case_sensitive":
		return boolToInt(b.NicklistCaseSensitive), true
	case "nicklist_display_groups":
		return boolToInt(b.NicklistDisplayGroups), true
	case "input_pos":
		if b.Input == nil {
			return 0, true
		}
		return int64(b.Input.Cursor()), true
	case "input_get_any_user_data":
		if b.Input == nil {
			return 0, true
		}
		return boolToInt(b.Input.GetAnyUserData), true
	case "input_get_unknown_commands":
		if b.Input == nil {
			return 0, true
		}
		return boolToInt(b.Input.GetUnknownCommands), true
	case "input_get_empty":
		if b.Input == nil {
			return 0, true
		}
		return boolToInt(b.Input.GetEmpty), true
	case "input_multiline":
		if b.Input == nil {
			return 0, true
		}
		return boolToInt(b.Input.Multiline), true
	case "num_history":
		if b.History == nil {
			return 0, true
		}
		return int64(b.History.Len()), true
	default:
		return 0, false
	}
}

// GetString reads a string property off b, including the dynamic
// "localvar_*" and "key_bind_*" families; "hotlist_max_level_nicks" is read
// only as a whole, with no per-nick variant.
func (b *Buffer) GetString(prop string) (string, bool) {
	switch {
	case prop == "id":
		return strconv.FormatInt(b.ID, 10), true
	case prop == "plugin":
		return b.PluginOwner, true
	case prop == "name":
		return b.Name, true
	case prop == "full_name":
		return b.FullName(), true
	case prop == "old_full_name":
		return b.OldFullName, true
	case prop == "short_name":
		return b.ShortName, true
	case prop == "type":
		if b.Kind == Free {
			return "free", true
		}
		return "formatted", true
	case prop == "display":
		return b.DisplayRequested, true
	case prop == "title":
		return b.title, true
	case prop == "modes":
		return b.modes, true
	case prop == "input_prompt":
		return b.InputPrompt, true
	case prop == "input":
		if b.Input == nil {
			return "", true
		}
		return b.Input.Text(), true
	case prop == "text_search_input":
		return b.Search.Input, true
	case prop == "highlight_words":
		return strings.Join(b.HighlightWords, ","), true
	case prop == "highlight_regex":
		return b.HighlightRegex, true
	case prop == "highlight_disable_regex":
		return b.HighlightDisableRegex, true
	case prop == "highlight_tags":
		return strings.Join(b.HighlightTags, ","), true
	case prop == "highlight_tags_restrict":
		return strings.Join(b.HighlightTagsRestrict, ","), true
	case prop == "hotlist_max_level_nicks":
		return joinNickLevels(b.HotlistMaxLevelNicks), true
	case strings.HasPrefix(prop, "localvar_"):
		v, ok := b.LocalVars[strings.TrimPrefix(prop, "localvar_")]
		return v, ok
	case strings.HasPrefix(prop, "key_bind_"):
		v, ok := b.KeyBindings[strings.TrimPrefix(prop, "key_bind_")]
		return v, ok
	default:
		return "", false
	}
}

func joinNickLevels(m map[string]int) string {
	parts := make([]string, 0, len(m))
	for nick, level := range m {
		parts = append(parts, nick+":"+strconv.Itoa(level))
	}
	return strings.Join(parts, ",")
}

// Set dispatches a string-valued property write to the matching typed
// mutator, covering the full recognised `set` property surface: exact
// names first (including highlight_words_add/_del), then the dynamic prefix
// families (localvar_*, key_bind_*, key_unbind_*,
// hotlist_max_level_nicks_add/_del).
func (s *Store) Set(b *Buffer, prop, value string) bool {
	switch prop {
	case "title":
		s.SetTitle(b, value)
	case "modes":
		s.SetModes(b, value)
	case "short_name":
		b.ShortName = value
	case "name":
		return s.Rename(b, value) == nil
	case "number":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		s.ToNumber(b, n)
	case "type":
		switch value {
		case "free":
			b.Kind = Free
		case "formatted":
			b.Kind = Formatted
		default:
			return false
		}
	case "display":
		b.DisplayRequested = value
	case "hidden":
		if value == "1" {
			s.Hide(b)
		} else {
			s.Show(b)
		}
	case "notify":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		b.NotifyLevel = NotifyLevel(n)
	case "input_prompt":
		b.InputPrompt = value
	case "input":
		if b.Input != nil {
			b.Input.ReplaceAll(value)
		}
	case "input_pos":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		if b.Input != nil {
			b.Input.SetCursor(n)
		}
	case "input_get_any_user_data":
		if b.Input != nil {
			b.Input.GetAnyUserData = value == "1"
		}
	case "input_get_unknown_commands":
		if b.Input != nil {
			b.Input.GetUnknownCommands = value == "1"
		}
	case "input_get_empty":
		if b.Input != nil {
			b.Input.GetEmpty = value == "1"
		}
	case "input_multiline":
		if b.Input != nil {
			b.Input.Multiline = value == "1"
		}
	case "day_change":
		b.DayChangeEnabled = value == "1"
	case "clear":
		b.Clearable = value == "1"
	case "filter":
		b.FilterEnabled = value == "1"
	case "time_for_each_line":
		b.TimeForEachLine = value == "1"
	case "print_hooks_enabled":
		b.PrintHooksEnabled = value == "1"
	case "nicklist":
		b.NicklistEnabled = value == "1"
	case "nicklist_case_sensitive":
		b.NicklistCaseSensitive = value == "1"
	case "nicklist_display_groups":
		b.NicklistDisplayGroups = value == "1"
	case "highlight_words":
		b.HighlightWords = splitNonEmpty(value)
	case "highlight_words_add":
		b.HighlightWords = appendUnique(b.HighlightWords, splitNonEmpty(value))
	case "highlight_words_del":
		b.HighlightWords = removeAll(b.HighlightWords, splitNonEmpty(value))
	case "highlight_disable_regex":
		b.HighlightDisableRegex = value
	case "highlight_regex":
		b.HighlightRegex = value
	case "highlight_tags":
		b.HighlightTags = splitNonEmpty(value)
	case "highlight_tags_restrict":
		b.HighlightTagsRestrict = splitNonEmpty(value)
	case "hotlist_max_level_nicks":
		b.HotlistMaxLevelNicks = parseNickLevels(value)
	case "unread":
		s.SetUnread(b, value)
	case "hotlist":
		return s.setHotlistProperty(b, value)
	default:
		switch {
		case strings.HasPrefix(prop, "localvar_set_"):
			s.SetLocalVar(b, strings.TrimPrefix(prop, "localvar_set_"), value)
		case strings.HasPrefix(prop, "localvar_del_"):
			s.RemoveLocalVar(b, strings.TrimPrefix(prop, "localvar_del_"))
		case strings.HasPrefix(prop, "key_bind_"):
			if b.KeyBindings == nil {
				b.KeyBindings = make(map[string]string)
			}
			b.KeyBindings[strings.TrimPrefix(prop, "key_bind_")] = value
		case strings.HasPrefix(prop, "key_unbind_"):
			combo := strings.TrimPrefix(prop, "key_unbind_")
			if combo == "*" {
				b.KeyBindings = make(map[string]string)
			} else {
				delete(b.KeyBindings, combo)
			}
		case strings.HasPrefix(prop, "hotlist_max_level_nicks_add_"):
			nick := strings.TrimPrefix(prop, "hotlist_max_level_nicks_add_")
			level, err := strconv.Atoi(value)
			if err != nil {
				return false
			}
			if b.HotlistMaxLevelNicks == nil {
				b.HotlistMaxLevelNicks = make(map[string]int)
			}
			b.HotlistMaxLevelNicks[nick] = level
		case strings.HasPrefix(prop, "hotlist_max_level_nicks_del_"):
			delete(b.HotlistMaxLevelNicks, strings.TrimPrefix(prop, "hotlist_max_level_nicks_del_"))
		default:
			return false
		}
	}
	return true
}

// setHotlistProperty implements the hotlist(+/-/N) property: "+" and "-"
// toggle whether this buffer takes part in the hotlist at all, any other
// value is parsed as a priority level and added directly.
func (s *Store) setHotlistProperty(b *Buffer, value string) bool {
	switch value {
	case "+":
		s.HotlistAdd(b, b.HotlistPriority)
	case "-":
		s.HotlistRemove(b)
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		s.HotlistAdd(b, HotlistPriority(n))
	}
	return true
}

// SetUnread implements the unread("", "0", "+N", "-N", "N") property by
// moving the buffer's read marker: "" (or "-1") marks everything unread,
// "0" marks everything read, a signed delta shifts the marker by that many
// lines, and a bare count marks that many trailing lines unread.
func (s *Store) SetUnread(b *Buffer, value string) bool {
	ll := b.Lines
	total := ll.Len()

	switch {
	case value == "" || value == "-1":
		ll.LastRead = nil
		ll.FirstNotRead = total > 0
	case value == "0":
		ll.LastRead = ll.Last
		ll.FirstNotRead = false
	case strings.HasPrefix(value, "+") || strings.HasPrefix(value, "-"):
		delta, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		idx := readMarkerIndex(ll) + delta
		setReadMarkerAt(ll, idx)
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		setReadMarkerAt(ll, total-n-1)
	}
	return true
}

// readMarkerIndex returns the line index (0 = oldest) that LastRead points
// at, or -1 if nothing has been read yet.
func readMarkerIndex(ll *LineList) int {
	if ll.LastRead == nil {
		return -1
	}
	i := 0
	for l := ll.First; l != nil; l = l.next {
		if l == ll.LastRead {
			return i
		}
		i++
	}
	return -1
}

func setReadMarkerAt(ll *LineList, idx int) {
	if idx < 0 {
		ll.LastRead = nil
		ll.FirstNotRead = ll.Len() > 0
		return
	}
	if idx >= ll.Len()-1 {
		ll.LastRead = ll.Last
		ll.FirstNotRead = false
		return
	}
	ll.LastRead = ll.At(idx)
	ll.FirstNotRead = ll.LastRead == nil && ll.Len() > 0
}

func splitNonEmpty(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(existing []string, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e] = true
	}
	for _, a := range add {
		if !seen[a] {
			existing = append(existing, a)
			seen[a] = true
		}
	}
	return existing
}

func removeAll(existing []string, drop []string) []string {
	dropSet := make(map[string]bool, len(drop))
	for _, d := range drop {
		dropSet[d] = true
	}
	out := existing[:0:0]
	for _, e := range existing {
		if !dropSet[e] {
			out = append(out, e)
		}
	}
	return out
}

func parseNickLevels(value string) map[string]int {
	out := make(map[string]int)
	if value == "" {
		return out
	}
	for _, pair := range strings.Split(value, ",") {
		nick, levelStr, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			continue
		}
		out[nick] = level
	}
	return out
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
