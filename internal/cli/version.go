package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionShort controls whether to show short or full version output
var versionShort bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build date of ctop.

Binaries built without release ldflags report the VCS revision and commit
time recorded by the Go toolchain instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
	Go       string
	Platform string
}

// shortRevision is the number of revision characters shown.
const shortRevision = 7

// currentBuild returns the ldflags values, completed from the module's
// embedded VCS settings where a release build did not set them.
func currentBuild() buildInfo {
	b := buildInfo{
		Version:  version,
		Commit:   commit,
		Date:     date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = b.withVCS(info.Settings)
	}
	return b
}

// withVCS fills Commit and Date from vcs.* build settings when they still
// hold their placeholder values.
func (b buildInfo) withVCS(settings []debug.BuildSetting) buildInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" && s.Value != "" {
				b.Commit = s.Value
				if len(b.Commit) > shortRevision {
					b.Commit = b.Commit[:shortRevision]
				}
			}
		case "vcs.time":
			if b.Date == "unknown" && s.Value != "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// write prints the version block, or only the version with short.
func (b buildInfo) write(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, b.Version)
		return
	}

	rev := b.Commit
	if b.Modified {
		rev += " (modified)"
	}
	fields := [][2]string{
		{"commit", rev},
		{"built", b.Date},
		{"go", b.Go},
		{"os/arch", b.Platform},
	}

	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f[0])+1)
	}
	label := lipgloss.NewStyle().Width(width + 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "ctop %s\n", formatVersion(b.Version))
	for _, f := range fields {
		sb.WriteString("  " + label.Render(f[0]+":") + f[1] + "\n")
	}
	fmt.Fprint(w, sb.String())
}

// printVersion writes the version of the running binary.
func printVersion(w io.Writer, short bool) {
	currentBuild().write(w, short)
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
