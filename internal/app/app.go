// Package app wires the client together and drives the command surface:
// auth, the leave-request form, the personal history view and the
// administrative actions.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/config"
	"github.com/caaaae/E-Leave/internal/draft"
	"github.com/caaaae/E-Leave/internal/leaveform"
	"github.com/caaaae/E-Leave/internal/localstore"
	"github.com/caaaae/E-Leave/internal/shared/apperror"
	"github.com/caaaae/E-Leave/internal/token"

	"go.uber.org/zap"
)

type App struct {
	cfg    config.Config
	kv     localstore.Store
	tokens *token.Store
	client *api.Client
	in     *bufio.Scanner
	inEOF  bool
	out    io.Writer
	logger *zap.Logger
}

func New(cfg config.Config, kv localstore.Store, client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		kv:     kv,
		tokens: token.NewStore(kv),
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: zap.L().Named("app"),
	}
}

// Run builds the production wiring and dispatches one command.
func Run(ctx context.Context, args []string) error {
	cfg := config.Load()

	kv, err := openStorage(cfg)
	if err != nil {
		return err
	}

	tokens := token.NewStore(kv)
	client := api.New(cfg.APIBaseURL, tokens)

	return New(cfg, kv, client, os.Stdin, os.Stdout).Dispatch(ctx, args)
}

func openStorage(cfg config.Config) (localstore.Store, error) {
	if cfg.StorageBackend == config.BackendRedis {
		rdb, err := localstore.DialRedisWithRetry(cfg.RedisAddr, 3)
		if err != nil {
			return nil, err
		}
		return localstore.NewRedisStore(rdb), nil
	}
	return localstore.NewFileStore(cfg.StateDir)
}

func (a *App) Dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx)
	case "register":
		return a.cmdRegister(ctx)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "apply":
		return a.cmdApply(ctx)
	case "history":
		return a.cmdHistory(ctx)
	case "update":
		return a.cmdUpdate(ctx, args[1:])
	case "delete":
		return a.cmdDelete(ctx, args[1:])
	case "admin":
		return a.cmdAdmin(ctx, args[1:])
	default:
		a.usage()
		return apperror.New(apperror.CodeInvalidInput, fmt.Sprintf("unknown command %q", args[0]), 0)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `e-leave client

Commands:
  login              log in and store credentials
  register           create an account
  logout             clear stored credentials and draft
  whoami             show the logged-in user
  apply              fill in and submit a leave request (draft autosaves)
  history            list your leave requests
  update <id>        edit one of your pending requests
  delete <id>        delete one of your pending requests
  admin list         list all leave requests
  admin approve <id> approve a request
  admin reject <id>  reject a request
  admin delete <id>  delete any request`)
}

// promptLine prints a label and reads one trimmed line; an empty line
// keeps current.
func (a *App) promptLine(label, current string) string {
	if current != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(a.out, "%s: ", label)
	}
	if !a.in.Scan() {
		a.inEOF = true
		return current
	}
	line := strings.TrimSpace(a.in.Text())
	if line == "" {
		return current
	}
	return line
}

func (a *App) confirm(label string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", label)
	if !a.in.Scan() {
		a.inEOF = true
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.in.Text()))
	return answer == "y" || answer == "yes"
}

func (a *App) cmdLogin(ctx context.Context) error {
	username := a.promptLine("Username", "")
	password := a.promptLine("Password", "")

	pair, err := a.client.Login(ctx, username, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return apperror.New(apperror.CodeUnauthorized, "Incorrect Username or Password", 401)
		}
		return err
	}
	if err := a.tokens.SetPair(ctx, pair.Access, pair.Refresh); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", username)
	return nil
}

func (a *App) cmdRegister(ctx context.Context) error {
	req := api.RegisterRequest{
		Username:    a.promptLine("Username", ""),
		FirstName:   a.promptLine("First Name", ""),
		LastName:    a.promptLine("Last Name", ""),
		Email:       a.promptLine("Email", ""),
		EmployeeID:  a.promptLine("Employee ID", ""),
		PhoneNumber: a.promptLine("Phone Number", ""),
		Password:    a.promptLine("Password", ""),
	}
	if err := a.client.Register(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. You can now log in.")
	return nil
}

// cmdLogout clears everything the client stored locally, credentials and
// draft alike.
func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return err
	}
	if err := draft.NewStore(a.kv).Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context) error {
	claims, err := a.tokens.AccessClaims(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	switch {
	case claims.Username != "":
		fmt.Fprintf(a.out, "Logged in as %s", claims.Username)
	case claims.UserID != "":
		fmt.Fprintf(a.out, "Logged in as user #%s", claims.UserID)
	default:
		fmt.Fprint(a.out, "Logged in")
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, " (session expires %s)", claims.ExpiresAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) cmdHistory(ctx context.Context) error {
	leaves, err := a.client.ListMyLeaves(ctx)
	if err != nil {
		return err
	}
	renderLeaves(a.out, leaves)
	return nil
}

func (a *App) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return apperror.New(apperror.CodeInvalidInput, "admin needs a subcommand", 0)
	}
	switch args[0] {
	case "list":
		leaves, err := a.client.ListAllLeaves(ctx)
		if err != nil {
			return err
		}
		renderLeaves(a.out, leaves)
		return nil
	case "approve":
		return a.setStatus(ctx, args[1:], leaveform.StatusApproved, true)
	case "reject":
		return a.setStatus(ctx, args[1:], leaveform.StatusRejected, true)
	case "delete":
		return a.deleteLeave(ctx, args[1:], true)
	default:
		return apperror.New(apperror.CodeInvalidInput, fmt.Sprintf("unknown admin subcommand %q", args[0]), 0)
	}
}

func (a *App) cmdUpdate(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	row, err := a.findLeave(ctx, id, false)
	if err != nil {
		return err
	}
	if err := guardNotFinal(*row); err != nil {
		return err
	}

	req := updateRequestFrom(*row)
	req.LeaveType = a.promptLine("Leave Type", req.LeaveType)
	req.StartDate = a.promptLine("Start Date (YYYY-MM-DD)", req.StartDate)
	req.EndDate = a.promptLine("End Date (YYYY-MM-DD)", req.EndDate)
	req.Reason = a.promptLine("Reason for Leave", req.Reason)

	if _, err := a.client.UpdateLeave(ctx, id, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Leave request updated successfully!")
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	return a.deleteLeave(ctx, args, false)
}

func (a *App) deleteLeave(ctx context.Context, args []string, admin bool) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	row, err := a.findLeave(ctx, id, admin)
	if err != nil {
		return err
	}
	if !admin {
		if err := guardNotFinal(*row); err != nil {
			return err
		}
	}
	if !a.confirm("Are you sure? This action cannot be undone.") {
		fmt.Fprintln(a.out, "Not deleted.")
		return nil
	}
	if err := a.client.DeleteLeave(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Leave request deleted successfully.")
	return nil
}

func (a *App) setStatus(ctx context.Context, args []string, status string, admin bool) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	row, err := a.findLeave(ctx, id, admin)
	if err != nil {
		return err
	}
	if err := guardNotFinal(*row); err != nil {
		return err
	}

	req := updateRequestFrom(*row)
	req.Status = status
	if _, err := a.client.UpdateLeave(ctx, id, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Leave request #%d is now %s.\n", id, status)
	return nil
}

func (a *App) findLeave(ctx context.Context, id int, admin bool) (*api.Leave, error) {
	var (
		leaves []api.Leave
		err    error
	)
	if admin {
		leaves, err = a.client.ListAllLeaves(ctx)
	} else {
		leaves, err = a.client.ListMyLeaves(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range leaves {
		if leaves[i].ID == id {
			return &leaves[i], nil
		}
	}
	return nil, apperror.New(apperror.CodeNotFound, fmt.Sprintf("leave request #%d not found", id), 404)
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, apperror.New(apperror.CodeInvalidInput, "a leave request id is required", 0)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.CodeInvalidInput, fmt.Sprintf("invalid leave request id %q", args[0]), 0)
	}
	return id, nil
}

// guardNotFinal refuses changes to a request an approver already decided.
func guardNotFinal(row api.Leave) error {
	if row.Status == leaveform.StatusApproved || row.Status == leaveform.StatusRejected {
		return apperror.New(apperror.CodeInvalidInput,
			fmt.Sprintf("leave request #%d is already %s and can no longer be changed", row.ID, row.Status), 0)
	}
	return nil
}

// updateRequestFrom carries every scalar of the row so an update changes
// only what the caller overrides. The supporting document never rides
// along.
func updateRequestFrom(row api.Leave) api.UpdateLeaveRequest {
	return api.UpdateLeaveRequest{
		EmployeeName: row.EmployeeName,
		EmployeeID:   row.EmployeeID,
		Email:        row.Email,
		PhoneNumber:  row.PhoneNumber,
		Department:   row.Department,
		LeaveType:    row.LeaveType,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		Reason:       row.Reason,
		Status:       row.Status,
	}
}
