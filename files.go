package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/tonimelisma/gdrive-go/internal/driveops"
	"github.com/tonimelisma/gdrive-go/internal/gdrive"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List files in the folder",
		Args:  cobra.NoArgs,
		RunE:  runLs,
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Print the ID of the file with this name; exit 1 if absent",
		Args:  cobra.ExactArgs(1),
		RunE:  runFind,
	}
}

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <local-path> [remote-name]",
		Short: "Upload a file, replacing any file of the same name",
		Long: `Uploads a local file to the folder. An existing file with the same name is
deleted first, so the folder keeps one entry per name. The remote name
defaults to the local file's base name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runPut,
	}

	cmd.Flags().String("mime", "", "content type (detected when empty)")
	cmd.Flags().Bool("no-replace", false, "create a new entry even if the name exists")

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Permanently delete a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRm,
	}

	cmd.Flags().Bool("id", false, "treat the argument as a file ID")
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name> [local-path]",
		Short: "Download a file",
		Long: `Downloads a file from the folder. The local path defaults to the remote
name in the current directory; an existing file there is overwritten.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runGet,
	}

	cmd.Flags().Bool("id", false, "treat the argument as a file ID")

	return cmd
}

// entryJSON is the JSON output schema for a single folder entry.
type entryJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	MD5        string `json:"md5,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	IsFolder   bool   `json:"is_folder"`
}

func toEntryJSON(e *gdrive.Entry) entryJSON {
	out := entryJSON{
		ID:       e.ID,
		Name:     e.Name,
		MimeType: e.MimeType,
		Size:     e.Size,
		MD5:      e.MD5,
		IsFolder: e.IsFolder,
	}

	if !e.ModifiedAt.IsZero() {
		out.ModifiedAt = e.ModifiedAt.UTC().Format(time.RFC3339)
	}

	return out
}

func runLs(cmd *cobra.Command, _ []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	session, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	entries, err := session.List(cmd.Context(), folder)
	if err != nil {
		return err
	}

	if flagJSON {
		out := make([]entryJSON, 0, len(entries))
		for i := range entries {
			out = append(out, toEntryJSON(&entries[i]))
		}

		return printJSON(out)
	}

	if len(entries) == 0 {
		statusf("Folder is empty\n")
		return nil
	}

	printEntriesTable(entries)

	return nil
}

// printEntriesTable lists folders first, then files, each group by name.
func printEntriesTable(entries []gdrive.Entry) {
	sorted := make([]gdrive.Entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsFolder != sorted[j].IsFolder {
			return sorted[i].IsFolder
		}

		return sorted[i].Name < sorted[j].Name
	})

	headers := []string{"NAME", "SIZE", "MODIFIED", "TYPE", "ID"}
	rows := make([][]string, 0, len(sorted))

	for i := range sorted {
		e := &sorted[i]
		name, size := e.Name, formatSize(e.Size)

		if e.IsFolder {
			name += "/"
			size = "-"
		}

		rows = append(rows, []string{name, size, formatTime(e.ModifiedAt), e.MimeType, e.ID})
	}

	printTable(os.Stdout, headers, rows)
}

// findJSON is the JSON output schema for find.
type findJSON struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	ID    string `json:"id,omitempty"`
}

func runFind(cmd *cobra.Command, args []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	session, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	name := args[0]

	id, found, err := session.Find(cmd.Context(), folder, name)
	if err != nil {
		return err
	}

	if flagJSON {
		if err := printJSON(findJSON{Name: name, Found: found, ID: id}); err != nil {
			return err
		}
	} else if found {
		fmt.Println(id)
	} else {
		statusf("%s: not found\n", name)
	}

	if !found {
		return errNotPresent
	}

	return nil
}

// putJSON is the JSON output schema for put.
type putJSON struct {
	Name       string `json:"name"`
	Outcome    string `json:"outcome"`
	ID         string `json:"id,omitempty"`
	PreviousID string `json:"previous_id,omitempty"`
	Size       int64  `json:"size"`
}

func runPut(cmd *cobra.Command, args []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	local := args[0]
	name := remoteName(local)

	if len(args) > 1 {
		name = args[1]
	}

	mimeType, err := cmd.Flags().GetString("mime")
	if err != nil {
		return err
	}

	noReplace, err := cmd.Flags().GetBool("no-replace")
	if err != nil {
		return err
	}

	ctx, stop := shutdownContext(cmd.Context(), buildLogger())
	defer stop()

	session, _, err := openSession(ctx)
	if err != nil {
		return err
	}

	req := driveops.UploadRequest{
		Folder:    folder,
		Name:      name,
		LocalPath: local,
		MimeType:  mimeType,
	}

	if noReplace {
		entry, err := session.Upload(ctx, req)
		if err != nil {
			return err
		}

		return reportPut(&driveops.ReplaceResult{
			Name:    name,
			Outcome: driveops.OutcomeCreated,
			ID:      entry.ID,
			Entry:   entry,
		})
	}

	res, err := session.UploadAndReplace(ctx, req)
	if err != nil {
		if res != nil && res.Outcome == driveops.OutcomeRemoved {
			statusf("Warning: %s was deleted remotely but the new upload failed; run put again\n", name)
		}

		return err
	}

	return reportPut(res)
}

func reportPut(res *driveops.ReplaceResult) error {
	var size int64
	if res.Entry != nil {
		size = res.Entry.Size
	}

	if flagJSON {
		return printJSON(putJSON{
			Name:       res.Name,
			Outcome:    res.Outcome.String(),
			ID:         res.ID,
			PreviousID: res.PreviousID,
			Size:       size,
		})
	}

	switch res.Outcome {
	case driveops.OutcomeReplaced:
		statusf("Replaced %s (%s -> %s, %s)\n", res.Name, res.PreviousID, res.ID, formatSize(size))
	case driveops.OutcomeDuplicated:
		statusf("Uploaded %s (%s, %s); old entry %s could not be deleted: %v\n",
			res.Name, res.ID, formatSize(size), res.PreviousID, res.DeleteErr)
	default:
		statusf("Uploaded %s (%s, %s)\n", res.Name, res.ID, formatSize(size))
	}

	return nil
}

// stdinIsTerminal reports whether an interactive prompt can be shown.
var stdinIsTerminal = func() bool { return isTerminal(os.Stdin) }

// confirm asks a yes/no question on the terminal.
var confirm = func(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}

		return false, fmt.Errorf("prompt: %w", err)
	}

	return true, nil
}

func runRm(cmd *cobra.Command, args []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	byID, err := cmd.Flags().GetBool("id")
	if err != nil {
		return err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	target := args[0]

	if !yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to delete %q without confirmation; pass --yes", target)
		}

		ok, err := confirm(fmt.Sprintf("Permanently delete %s", target))
		if err != nil {
			return err
		}

		if !ok {
			statusf("Cancelled.\n")
			return nil
		}
	}

	session, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	id := target
	if byID {
		err = session.Delete(cmd.Context(), id)
	} else {
		id, err = session.Remove(cmd.Context(), folder, target)
	}

	if err != nil {
		return err
	}

	statusf("Deleted %s (%s)\n", target, id)

	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	folder, err := requireFolder()
	if err != nil {
		return err
	}

	byID, err := cmd.Flags().GetBool("id")
	if err != nil {
		return err
	}

	ctx, stop := shutdownContext(cmd.Context(), buildLogger())
	defer stop()

	session, _, err := openSession(ctx)
	if err != nil {
		return err
	}

	id, name := args[0], args[0]

	if byID {
		entry, err := session.Stat(ctx, id)
		if err != nil {
			return err
		}

		name = entry.Name
	} else {
		var found bool

		id, found, err = session.Find(ctx, folder, name)
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%q: %w", name, driveops.ErrNotFound)
		}
	}

	local := localName(name)
	if len(args) > 1 {
		local = args[1]
	}

	res, err := session.Download(ctx, id, local).Wait()
	if err != nil {
		if _, statErr := os.Stat(local); statErr == nil {
			statusf("Partial download left at %s\n", local)
		}

		return err
	}

	if flagJSON {
		return printJSON(struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Path  string `json:"path"`
			Bytes int64  `json:"bytes"`
		}{res.ID, res.Name, res.Path, res.Bytes})
	}

	statusf("Downloaded %s to %s (%s)\n", res.Name, res.Path, formatSize(res.Bytes))

	return nil
}

// remoteName derives the remote name from a local path. macOS hands out
// decomposed (NFD) file names; Drive matches names byte for byte, so the
// name is stored in NFC to be findable from every platform.
func remoteName(local string) string {
	return norm.NFC.String(filepath.Base(local))
}

// localName turns a remote name into a file name in the current directory.
// Drive names may contain path separators.
func localName(remote string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(remote)
	if name == "" || name == "." || name == ".." {
		return "download"
	}

	return name
}
