package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartavull/alacritty/internal/appconfig"
	"github.com/tartavull/alacritty/ipc"
	"github.com/tartavull/alacritty/schema"
	"pkt.systems/pslog"
)

// One-shot client exit codes. Distinct so scripts can tell "the daemon
// said no" from "the daemon was unreachable" from "the reply made no
// sense".
const (
	exitAppError       = 1
	exitConnectFailure = 2
	exitProtocolError  = 3
)

type msgOptions struct {
	socket  string
	timeout time.Duration
}

func newMsgCmd() *cobra.Command {
	opts := &msgOptions{}
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Send a single control request to a running daemon",
	}
	cmd.PersistentFlags().StringVarP(&opts.socket, "socket", "s", "", "control socket path (default: the daemon's default)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(
		newPingCmd(opts),
		newCapabilitiesCmd(opts),
		newListRequestsCmd(opts),
		newListTabsCmd(opts),
		newGetTabStateCmd(opts),
		newCreateTabCmd(opts),
		newCreateGroupCmd(opts),
		newCloseTabCmd(opts),
		newSelectTabCmd(opts),
		newMoveTabCmd(opts),
		newSetTabTitleCmd(opts),
		newSetGroupNameCmd(opts),
		newRestoreClosedTabCmd(opts),
		newOpenURLCmd(opts),
		newSetWebURLCmd(opts),
		newReloadWebCmd(opts),
		newOpenInspectorCmd(opts),
		newGetTabPanelCmd(opts),
		newSetTabPanelCmd(opts),
		newActionCmd(opts),
		newSendInputCmd(opts),
		newCommandBarCmd(opts),
		newInspectorCmd(opts),
		newSendCmd(opts),
		newConfigCmd(opts),
		newGetConfigCmd(opts),
	)
	return cmd
}

// runMsg dials, sends one request, prints the data payload, and maps
// failures onto the exit code taxonomy.
func runMsg(cmd *cobra.Command, opts *msgOptions, kind string, params any) error {
	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	socket := opts.socket
	if socket == "" {
		socket = appconfig.DefaultSocketPath()
	}
	client, err := ipc.Dial(ctx, socket)
	if err != nil {
		return exitError{code: exitConnectFailure, err: err}
	}
	defer func() {
		if err := client.Close(); err != nil {
			pslog.Ctx(cmd.Context()).Warn("control socket close failed", "err", err)
		}
	}()
	data, err := client.Do(ctx, kind, params)
	if err != nil {
		return exitError{code: exitCodeFor(err), err: err}
	}
	if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		var buf bytes.Buffer
		if json.Indent(&buf, data, "", "  ") == nil {
			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}
	}
	return nil
}

func exitCodeFor(err error) int {
	var wireErr *ipc.WireError
	switch {
	case errors.As(err, &wireErr):
		if wireErr.Kind == ipc.ErrorParse {
			return exitProtocolError
		}
		return exitAppError
	case errors.Is(err, ipc.ErrProtocol):
		return exitProtocolError
	case errors.Is(err, ipc.ErrConnect):
		return exitConnectFailure
	}
	return exitAppError
}

func parseTabIDFlag(value string) (*schema.TabID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := schema.ParseTabID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func newPingCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the daemon is alive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindPing, nil)
		},
	}
}

func newCapabilitiesCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Print daemon version and supported request kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindGetCapabilities, nil)
		},
	}
}

func newListRequestsCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-requests",
		Short: "List supported request kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindListRequests, nil)
		},
	}
}

func newListTabsCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-tabs",
		Short: "List all tabs grouped in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindListTabs, nil)
		},
	}
}

func newGetTabStateCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get-tab-state <tab-id>",
		Short: "Print the full state of one tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := schema.ParseTabID(args[0])
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindGetTabState, ipc.GetTabStateParams{TabID: id})
		},
	}
}

func newCreateTabCmd(opts *msgOptions) *cobra.Command {
	var kind, url, group, title, workingDirectory string
	var groupID uint64
	var command []string
	var hold bool
	cmd := &cobra.Command{
		Use:   "create-tab",
		Short: "Create a shell or web tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.CreateTabParams{
				Kind:             schema.TabKind(kind),
				URL:              url,
				Group:            group,
				Title:            title,
				WorkingDirectory: workingDirectory,
				Command:          command,
				Hold:             hold,
			}
			if cmd.Flags().Changed("group-id") {
				gid := schema.GroupID(groupID)
				params.GroupID = &gid
			}
			return runMsg(cmd, opts, ipc.KindCreateTab, params)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(schema.TabKindShell), "tab kind (shell or web)")
	cmd.Flags().StringVar(&url, "url", "", "initial URL (web tabs)")
	cmd.Flags().StringVar(&group, "group", "", "group name (created when absent)")
	cmd.Flags().Uint64Var(&groupID, "group-id", 0, "existing group id")
	cmd.Flags().StringVar(&title, "title", "", "title override")
	cmd.Flags().StringVar(&workingDirectory, "working-directory", "", "working directory for the spawned session")
	cmd.Flags().StringArrayVar(&command, "command", nil, "command override for the spawned session")
	cmd.Flags().BoolVar(&hold, "hold", false, "keep the tab open after the session exits")
	return cmd
}

func newCreateGroupCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-group [name]",
		Short: "Create a tab group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.CreateGroupParams{}
			if len(args) == 1 {
				params.Name = args[0]
			}
			return runMsg(cmd, opts, ipc.KindCreateGroup, params)
		},
	}
}

func newCloseTabCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "close-tab [tab-id]",
		Short: "Close a tab (the active one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.CloseTabParams{}
			if len(args) == 1 {
				id, err := schema.ParseTabID(args[0])
				if err != nil {
					return err
				}
				params.TabID = &id
			}
			return runMsg(cmd, opts, ipc.KindCloseTab, params)
		},
	}
}

func newSelectTabCmd(opts *msgOptions) *cobra.Command {
	var next, previous, last bool
	var index int
	var tabID string
	cmd := &cobra.Command{
		Use:   "select-tab",
		Short: "Change the active tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.SelectTabParams{Next: next, Previous: previous, Last: last}
			if cmd.Flags().Changed("index") {
				params.Index = &index
			}
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			params.TabID = id
			return runMsg(cmd, opts, ipc.KindSelectTab, params)
		},
	}
	cmd.Flags().BoolVar(&next, "next", false, "select the next tab in display order")
	cmd.Flags().BoolVar(&previous, "previous", false, "select the previous tab in display order")
	cmd.Flags().BoolVar(&last, "last", false, "select the last tab in display order")
	cmd.Flags().IntVar(&index, "index", 0, "select the tab at this display index")
	cmd.Flags().StringVar(&tabID, "tab", "", "select this tab id")
	return cmd
}

func newMoveTabCmd(opts *msgOptions) *cobra.Command {
	var groupID uint64
	var ungrouped bool
	var index int
	cmd := &cobra.Command{
		Use:   "move-tab <tab-id>",
		Short: "Move a tab between groups or within its ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := schema.ParseTabID(args[0])
			if err != nil {
				return err
			}
			params := ipc.MoveTabParams{TabID: id}
			if cmd.Flags().Changed("group") {
				if ungrouped {
					return errors.New("--group and --ungrouped are mutually exclusive")
				}
				gid := schema.GroupID(groupID)
				params.GroupID = &gid
			}
			if cmd.Flags().Changed("index") {
				params.Index = &index
			}
			return runMsg(cmd, opts, ipc.KindMoveTab, params)
		},
	}
	cmd.Flags().Uint64Var(&groupID, "group", 0, "target group id")
	cmd.Flags().BoolVar(&ungrouped, "ungrouped", false, "move the tab out of any group")
	cmd.Flags().IntVar(&index, "index", 0, "target position (appended when omitted)")
	return cmd
}

func newSetTabTitleCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	var clear bool
	cmd := &cobra.Command{
		Use:   "set-tab-title [title]",
		Short: "Override or clear a tab title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.SetTabTitleParams{}
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			params.TabID = id
			switch {
			case clear && len(args) > 0:
				return errors.New("--clear and a title are mutually exclusive")
			case clear:
			case len(args) == 1:
				params.Title = &args[0]
			default:
				return errors.New("a title or --clear is required")
			}
			return runMsg(cmd, opts, ipc.KindSetTabTitle, params)
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	cmd.Flags().BoolVar(&clear, "clear", false, "drop the override and return to the session title")
	return cmd
}

func newSetGroupNameCmd(opts *msgOptions) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "set-group-name <group-id> [name]",
		Short: "Rename or unname a tab group",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var gid uint64
			if _, err := fmt.Sscanf(args[0], "%d", &gid); err != nil {
				return fmt.Errorf("invalid group id %q: %w", args[0], err)
			}
			params := ipc.SetGroupNameParams{GroupID: schema.GroupID(gid)}
			switch {
			case clear && len(args) > 1:
				return errors.New("--clear and a name are mutually exclusive")
			case clear:
			case len(args) == 2:
				params.Name = &args[1]
			default:
				return errors.New("a name or --clear is required")
			}
			return runMsg(cmd, opts, ipc.KindSetGroupName, params)
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the group name")
	return cmd
}

func newRestoreClosedTabCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore-closed-tab",
		Short: "Reopen the most recently closed tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindRestoreClosedTab, nil)
		},
	}
}

func newOpenURLCmd(opts *msgOptions) *cobra.Command {
	var newTab bool
	var tabID string
	cmd := &cobra.Command{
		Use:   "open-url <url>",
		Short: "Navigate a web tab, or open one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			params := ipc.OpenURLParams{URL: args[0], NewTab: newTab, TabID: id}
			return runMsg(cmd, opts, ipc.KindOpenURL, params)
		},
	}
	cmd.Flags().BoolVar(&newTab, "new-tab", false, "create a new web tab for the URL")
	cmd.Flags().StringVar(&tabID, "tab", "", "navigate this tab (the active tab by default)")
	return cmd
}

func newSetWebURLCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "set-web-url <url>",
		Short: "Point a web tab at a new URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindSetWebURL, ipc.SetWebURLParams{TabID: id, URL: args[0]})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newReloadWebCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "reload-web",
		Short: "Reload a web tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindReloadWeb, ipc.TabParams{TabID: id})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newOpenInspectorCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "open-inspector",
		Short: "Open the developer inspector for a web tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindOpenInspector, ipc.TabParams{TabID: id})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newGetTabPanelCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "get-tab-panel",
		Short: "Print a tab's panel state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindGetTabPanel, ipc.TabParams{TabID: id})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newSetTabPanelCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	var enable, disable bool
	var width int
	cmd := &cobra.Command{
		Use:   "set-tab-panel",
		Short: "Enable, disable, or resize a tab's panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			params := ipc.SetTabPanelParams{TabID: id}
			switch {
			case enable && disable:
				return errors.New("--enable and --disable are mutually exclusive")
			case enable:
				v := true
				params.Enabled = &v
			case disable:
				v := false
				params.Enabled = &v
			}
			if cmd.Flags().Changed("width") {
				params.Width = &width
			}
			return runMsg(cmd, opts, ipc.KindSetTabPanel, params)
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	cmd.Flags().BoolVar(&enable, "enable", false, "show the panel")
	cmd.Flags().BoolVar(&disable, "disable", false, "hide the panel")
	cmd.Flags().IntVar(&width, "width", 0, "panel width in columns")
	return cmd
}

func newActionCmd(opts *msgOptions) *cobra.Command {
	var tabID, action, viMotion, viAction, searchAction, mouseAction, esc string
	var command []string
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Dispatch a named operation against a tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			params := ipc.DispatchActionParams{
				TabID:        id,
				Action:       action,
				ViMotion:     viMotion,
				ViAction:     viAction,
				SearchAction: searchAction,
				MouseAction:  mouseAction,
				Esc:          esc,
				Command:      command,
			}
			return runMsg(cmd, opts, ipc.KindDispatchAction, params)
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	cmd.Flags().StringVar(&action, "action", "", "named action")
	cmd.Flags().StringVar(&viMotion, "vi-motion", "", "vi mode motion (shell tabs)")
	cmd.Flags().StringVar(&viAction, "vi-action", "", "vi mode action (shell tabs)")
	cmd.Flags().StringVar(&searchAction, "search-action", "", "search mode action (shell tabs)")
	cmd.Flags().StringVar(&mouseAction, "mouse-action", "", "mouse action")
	cmd.Flags().StringVar(&esc, "esc", "", "raw escape sequence literal")
	cmd.Flags().StringArrayVar(&command, "command", nil, "command bar program and arguments")
	return cmd
}

func newSendInputCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "send-input <text>",
		Short: "Write raw input to a tab's session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindSendInput, ipc.SendInputParams{TabID: id, Text: args[0]})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newCommandBarCmd(opts *msgOptions) *cobra.Command {
	var tabID string
	cmd := &cobra.Command{
		Use:   "command-bar <input>",
		Short: "Run a command bar input against a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTabIDFlag(tabID)
			if err != nil {
				return err
			}
			return runMsg(cmd, opts, ipc.KindRunCommandBar, ipc.RunCommandBarParams{TabID: id, Input: args[0]})
		},
	}
	cmd.Flags().StringVar(&tabID, "tab", "", "tab id (the active tab by default)")
	return cmd
}

func newInspectorCmd(opts *msgOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspector",
		Short: "Debugging-protocol session commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list-targets",
		Short: "List web tabs available for attachment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(cmd, opts, ipc.KindInspectorTargets, nil)
		},
	})

	attach := &cobra.Command{
		Use:   "attach",
		Short: "Attach a debugging session to a web tab",
		Args:  cobra.NoArgs,
	}
	var attachTab string
	attach.Flags().StringVar(&attachTab, "tab", "", "tab id (the active tab by default)")
	attach.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseTabIDFlag(attachTab)
		if err != nil {
			return err
		}
		return runMsg(cmd, opts, ipc.KindInspectorAttach, ipc.InspectorAttachParams{TabID: id})
	}
	cmd.AddCommand(attach)

	cmd.AddCommand(&cobra.Command{
		Use:   "detach <session-id>",
		Short: "Detach a debugging session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.InspectorSessionParams{SessionID: schema.SessionID(args[0])}
			return runMsg(cmd, opts, ipc.KindInspectorDetach, params)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "send <session-id> <json-frame>",
		Short: "Forward a protocol frame to the attached page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("frame is not valid JSON")
			}
			params := ipc.InspectorSendParams{
				SessionID: schema.SessionID(args[0]),
				Message:   json.RawMessage(args[1]),
			}
			return runMsg(cmd, opts, ipc.KindInspectorSend, params)
		},
	})

	poll := &cobra.Command{
		Use:   "poll <session-id>",
		Short: "Drain queued protocol frames",
		Args:  cobra.ExactArgs(1),
	}
	var pollMax int
	poll.Flags().IntVar(&pollMax, "max", 0, "maximum frames to return (0 = all)")
	poll.RunE = func(cmd *cobra.Command, args []string) error {
		params := ipc.InspectorPollParams{SessionID: schema.SessionID(args[0]), Max: pollMax}
		return runMsg(cmd, opts, ipc.KindInspectorPoll, params)
	}
	cmd.AddCommand(poll)

	return cmd
}

func newSendCmd(opts *msgOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <json-envelope>",
		Short: "Send a raw request envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[0])) {
				return fmt.Errorf("envelope is not valid JSON")
			}
			params := ipc.SendParams{Payload: json.RawMessage(args[0])}
			return runMsg(cmd, opts, ipc.KindSend, params)
		},
	}
}

func newConfigCmd(opts *msgOptions) *cobra.Command {
	var window int64
	var reset bool
	cmd := &cobra.Command{
		Use:   "config [path=value ...]",
		Short: "Apply runtime config overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.ConfigParams{Options: args, Reset: reset}
			if cmd.Flags().Changed("window") {
				wid := schema.WindowID(window)
				params.WindowID = &wid
			}
			return runMsg(cmd, opts, ipc.KindConfig, params)
		},
	}
	cmd.Flags().Int64Var(&window, "window", int64(schema.GlobalWindow), "window id (-1 = all windows)")
	cmd.Flags().BoolVarP(&reset, "reset", "r", false, "clear existing overrides first")
	return cmd
}

func newGetConfigCmd(opts *msgOptions) *cobra.Command {
	var window int64
	cmd := &cobra.Command{
		Use:   "get-config",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ipc.GetConfigParams{}
			if cmd.Flags().Changed("window") {
				wid := schema.WindowID(window)
				params.WindowID = &wid
			}
			return runMsg(cmd, opts, ipc.KindGetConfig, params)
		},
	}
	cmd.Flags().Int64Var(&window, "window", int64(schema.GlobalWindow), "window id (-1 = all windows)")
	return cmd
}
