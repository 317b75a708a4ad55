package theme

import "strings"

// GenerateCSS creates GTK4 CSS using the provided palette.
func GenerateCSS(p Palette) string {
	var sb strings.Builder

	// CSS custom properties (variables) - GTK4 uses :root selector
	sb.WriteString("/* Theme variables */\n")
	sb.WriteString(":root {\n")
	sb.WriteString(p.ToCSSVars())
	sb.WriteString("}\n\n")

	sb.WriteString(generateToolbarCSS())
	sb.WriteString("\n")
	sb.WriteString(generateTabBarCSS())
	sb.WriteString("\n")
	sb.WriteString(generateToastCSS())
	sb.WriteString("\n")
	sb.WriteString(generatePopoverCSS())

	return sb.String()
}

// generateToolbarCSS creates navigation toolbar styles.
// Uses em units for scalable UI.
func generateToolbarCSS() string {
	return `/* Toolbar styling */
.toolbar {
	background-color: var(--surface);
	border-bottom: 0.0625em solid var(--border);
	padding: 0.25em 0.375em;
}

button.toolbar-button {
	background-color: transparent;
	background-image: none;
	border: none;
	border-radius: 0.25em;
	padding: 0.25em 0.5em;
	color: var(--text);
	transition: background-color 100ms ease-in-out;
}

button.toolbar-button:hover {
	background-color: alpha(var(--accent), 0.15);
}

button.toolbar-button:disabled {
	color: var(--muted);
}

/* Address entry */
entry.address-entry {
	background-color: var(--bg);
	color: var(--text);
	border: 0.0625em solid var(--border);
	border-radius: 0.25em;
	padding: 0.25em 0.625em;
	caret-color: var(--accent);
}

entry.address-entry:focus {
	border-color: var(--accent);
}
`
}

// generateTabBarCSS creates tab bar styles.
func generateTabBarCSS() string {
	return `/* Tab bar styling */
.tab-bar {
	background-color: var(--surface);
	border-bottom: 0.0625em solid var(--border);
	padding: 0;
	min-height: 2em;
}

/* Tab button styling */
button.tab-button {
	background-color: var(--surface-variant);
	background-image: none;
	border: none;
	border-right: 0.0625em solid var(--border);
	border-radius: 0;
	padding: 0.25em 0.5em;
	transition: background-color 200ms ease-in-out;
}

button.tab-button:hover {
	background-color: shade(var(--surface-variant), 1.2);
}

button.tab-button.tab-button-active {
	background-color: shade(var(--surface-variant), 1.4);
	font-weight: 600;
}

/* Tab title text */
.tab-title {
	font-size: 0.75em;
	color: var(--text);
	font-weight: 500;
}

/* Per-tab close button */
button.tab-close {
	background-color: transparent;
	background-image: none;
	border: none;
	border-radius: 0.25em;
	padding: 0 0.25em;
	margin-left: 0.25em;
	color: var(--muted);
}

button.tab-close:hover {
	background-color: alpha(var(--destructive), 0.2);
	color: var(--destructive);
}
`
}

// generateToastCSS creates toast notification styles.
func generateToastCSS() string {
	return `/* Toast notifications */
.toast {
	background-color: var(--surface-variant);
	color: var(--text);
	border: 0.0625em solid var(--border);
	border-radius: 0.375em;
	padding: 0.5em 0.875em;
	margin: 0.75em;
}

.toast-info {
	border-left: 0.1875em solid var(--accent);
}

.toast-success {
	border-left: 0.1875em solid var(--success);
}

.toast-warning {
	border-left: 0.1875em solid var(--warning);
}

.toast-error {
	border-left: 0.1875em solid var(--destructive);
}
`
}

// generatePopoverCSS creates styles for the overlay popups.
func generatePopoverCSS() string {
	return `/* Overlay popups */
.popup-panel {
	background-color: var(--surface-variant);
	border: 0.0625em solid var(--border);
	border-radius: 0.375em;
	padding: 0.75em;
}

.popup-heading {
	font-size: 1em;
	font-weight: 600;
	color: var(--text);
	margin-bottom: 0.5em;
}

.popup-body {
	font-size: 0.875em;
	color: var(--text);
	margin-bottom: 0.75em;
}

button.popup-btn {
	background-color: var(--surface);
	background-image: none;
	border: 0.0625em solid var(--border);
	border-radius: 0.25em;
	padding: 0.25em 0.875em;
	color: var(--text);
}

button.popup-btn:hover {
	background-color: alpha(var(--accent), 0.15);
}

.bookmark-list {
	background-color: transparent;
}

.bookmark-row {
	padding: 0.375em 0.625em;
	border-radius: 0.25em;
	transition: background-color 100ms ease-in-out;
}

.bookmark-row:hover {
	background-color: alpha(var(--accent), 0.12);
}

.bookmark-title {
	font-size: 0.875em;
	color: var(--text);
	font-weight: 500;
}

.bookmark-url {
	font-size: 0.75em;
	color: var(--muted);
}
`
}
