package aria

import "strings"

// ExtractSnapshot locates the snapshot item list inside possibly
// decorated input. Snapshot sources wrap the list in various ways:
// plain text starting with "- ", a fenced block labelled yaml/yml (or
// unlabelled), or narrative prose followed by the list. When no list
// region can be found the input is returned unchanged and will fail
// grammar matching downstream.
func ExtractSnapshot(text string) string {
	if strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "- ") {
		return text
	}

	if body, ok := extractFencedBlock(text); ok {
		return body
	}

	if body, ok := extractListRun(text); ok {
		return body
	}

	return text
}

// extractFencedBlock returns the raw content of the first ``` fence
// whose info string is empty, "yaml" or "yml".
func extractFencedBlock(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}

		info := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
		if info != "" && info != "yaml" && info != "yml" {
			// Skip to the closing fence of a block we do not want.
			for i++; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == "```" {
					break
				}
			}
			continue
		}

		var body []string
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "```" {
				break
			}
			body = append(body, lines[j])
		}
		if len(body) > 0 {
			return strings.TrimRight(strings.Join(body, "\n"), "\n"), true
		}
	}

	return "", false
}

// extractListRun finds the first line starting with "- " and collects
// the contiguous run of list and indented lines that follows it.
func extractListRun(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "- ") {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var run []string
	for j := start; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "```" {
			break
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "- ") && !isIndented(lines[j]) && j > start {
			break
		}
		run = append(run, lines[j])
	}

	return strings.Join(run, "\n"), true
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
