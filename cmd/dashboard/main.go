package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/a7delivery/backend/internal/dashboard"
)

const usage = `Usage: dashboard [options] <command> [args]

Commands:
  login <username>             Authenticate and store the session
  logout                       End the session and clear stored credentials
  whoami                       Print the logged-in account

  orders                       List orders (filter with -status)
  sync                         Pull new orders from the store
  stats                        Print order counts by status
  dispatch <order-id> [...]    Send the given orders to the carrier

  settings                     Show integration settings
  settings-save                Save settings (see -store-url, -access-token, ...)
  settings-test                Probe both integrations

  users                        List managed accounts (admin only)
  user-create <username>       Create an account (admin only)
  user-update <id>             Update an account's password or expiry (admin only)
  user-toggle <id>             Enable or disable an account (admin only)
  user-delete <id>             Delete an account (admin only, requires -confirm)

Options:
`

type cli struct {
	manager *dashboard.SessionManager
	client  *dashboard.Client
	out     *tabwriter.Writer
}

func main() {
	var (
		server      = flag.String("server", "http://localhost:8080", "backend base URL")
		credentials = flag.String("credentials", defaultCredentialsPath(), "credential store path")
		status      = flag.String("status", "", "order status filter for the orders command")
		confirm     = flag.Bool("confirm", false, "confirm destructive operations")
		storeURL    = flag.String("store-url", "", "Shopify store URL for settings-save")
		accessToken = flag.String("access-token", "", "Shopify access token for settings-save")
		zrToken     = flag.String("zr-token", "", "ZRExpress token for settings-save")
		zrKey       = flag.String("zr-key", "", "ZRExpress key for settings-save")
		expires     = flag.String("expires", "", "account expiry for user-create/user-update (YYYY-MM-DD)")
		clearExpiry = flag.Bool("clear-expiry", false, "remove the account expiry on user-update")
		setPassword = flag.Bool("password", false, "prompt for a new password on user-update")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	store, err := dashboard.NewFileStore(*credentials)
	if err != nil {
		fatalf("cannot open credential store: %v", err)
	}
	session := &dashboard.Session{}
	client := dashboard.NewClient(*server, session)
	app := &cli{
		manager: dashboard.NewSessionManager(store, client, session),
		client:  client,
		out:     tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "login":
		err = app.login(ctx, flag.Args())
	case "logout":
		_, _ = app.manager.Restore(ctx)
		app.manager.Logout(ctx)
		fmt.Println("Logged out.")
	case "whoami":
		err = app.whoami(ctx)
	case "orders":
		err = app.restored(ctx, func() error { return app.orders(ctx, *status) })
	case "sync":
		err = app.restored(ctx, func() error { return app.sync(ctx) })
	case "stats":
		err = app.restored(ctx, func() error { return app.stats(ctx) })
	case "dispatch":
		err = app.restored(ctx, func() error { return app.dispatch(ctx, flag.Args()[1:]) })
	case "settings":
		err = app.restored(ctx, func() error { return app.settingsShow(ctx) })
	case "settings-save":
		err = app.restored(ctx, func() error {
			return app.settingsSave(ctx, dashboard.SettingsInput{
				ShopifyStoreURL:    *storeURL,
				ShopifyAccessToken: *accessToken,
				ZRExpressToken:     *zrToken,
				ZRExpressKey:       *zrKey,
			})
		})
	case "settings-test":
		err = app.restored(ctx, func() error { return app.settingsTest(ctx) })
	case "users":
		err = app.admin(ctx, func() error { return app.userList(ctx) })
	case "user-create":
		err = app.admin(ctx, func() error { return app.userCreate(ctx, flag.Args(), *expires) })
	case "user-update":
		err = app.admin(ctx, func() error {
			return app.userUpdate(ctx, flag.Args(), *expires, *clearExpiry, *setPassword)
		})
	case "user-toggle":
		err = app.admin(ctx, func() error { return app.userToggle(ctx, flag.Args()) })
	case "user-delete":
		err = app.admin(ctx, func() error { return app.userDelete(ctx, flag.Args(), *confirm) })
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fatalf("%v", report(err))
	}
}

// restored runs fn with a session restored from the credential store.
func (a *cli) restored(ctx context.Context, fn func() error) error {
	if _, err := a.manager.Restore(ctx); err != nil {
		return err
	}
	return fn()
}

// admin is restored plus a role gate for user administration commands.
func (a *cli) admin(ctx context.Context, fn func() error) error {
	user, err := a.manager.Restore(ctx)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("user administration requires an admin account")
	}
	return fn()
}

func (a *cli) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("login requires a username")
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	user, err := a.manager.Login(ctx, args[1], password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s).\n", user.Username, user.Role)
	return nil
}

func (a *cli) whoami(ctx context.Context) error {
	user, err := a.manager.Restore(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Role)
	if user.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", user.ExpiresAt.Format("2006-01-02"))
	}
	return nil
}

func (a *cli) orders(ctx context.Context, status string) error {
	board := dashboard.NewOrderBoard(a.client)
	board.SetFilter(status)
	if err := board.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ORDER\tCUSTOMER\tCITY\tTOTAL\tSTATUS\tTRACKING")
	for _, o := range board.Orders() {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.OrderNumber, o.CustomerName, o.City, o.TotalPrice.StringFixed(2), o.Status, o.TrackingNumber)
	}
	return a.out.Flush()
}

func (a *cli) sync(ctx context.Context) error {
	result, err := a.client.SyncOrders(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched %d orders, %d new.\n", result.Fetched, result.Synced)
	return nil
}

func (a *cli) stats(ctx context.Context) error {
	stats, err := a.client.OrderStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "total\t%d\n", stats.Total)
	fmt.Fprintf(a.out, "pending\t%d\n", stats.Pending)
	fmt.Fprintf(a.out, "processing\t%d\n", stats.Processing)
	fmt.Fprintf(a.out, "sent\t%d\n", stats.Sent)
	fmt.Fprintf(a.out, "delivered\t%d\n", stats.Delivered)
	return a.out.Flush()
}

func (a *cli) dispatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("dispatch requires at least one order id")
	}
	board := dashboard.NewOrderBoard(a.client)
	if err := board.Refresh(ctx); err != nil {
		return err
	}
	for _, id := range ids {
		board.Toggle(id)
		if !board.IsSelected(id) {
			return fmt.Errorf("unknown order id: %s", id)
		}
	}
	result, err := board.Dispatch(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Dispatched %d, failed %d.\n", result.SuccessCount, result.FailedCount)
	for _, f := range result.Failures {
		fmt.Printf("  %s: %s\n", f.OrderID, f.Message)
	}
	return nil
}

func (a *cli) settingsShow(ctx context.Context) error {
	panel := dashboard.NewSettingsPanel(a.client)
	settings, err := panel.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "store url\t%s\n", settings.ShopifyStoreURL)
	fmt.Fprintf(a.out, "access token\t%s\n", configured(settings.ShopifyAccessTokenSet))
	fmt.Fprintf(a.out, "zrexpress token\t%s\n", configured(settings.ZRExpressTokenSet))
	fmt.Fprintf(a.out, "zrexpress key\t%s\n", configured(settings.ZRExpressKeySet))
	return a.out.Flush()
}

func (a *cli) settingsSave(ctx context.Context, input dashboard.SettingsInput) error {
	panel := dashboard.NewSettingsPanel(a.client)
	if _, err := panel.Save(ctx, input); err != nil {
		return err
	}
	fmt.Println("Settings saved.")
	return nil
}

func (a *cli) settingsTest(ctx context.Context) error {
	panel := dashboard.NewSettingsPanel(a.client)
	result, err := panel.TestConnections(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "shopify\t%s\t%s\n", probe(result.Shopify.OK), result.Shopify.Detail)
	fmt.Fprintf(a.out, "zrexpress\t%s\t%s\n", probe(result.ZRExpress.OK), result.ZRExpress.Detail)
	return a.out.Flush()
}

func (a *cli) userList(ctx context.Context) error {
	panel := dashboard.NewUserAdminPanel(a.client)
	users, err := panel.List(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	fmt.Fprintln(a.out, "ID\tUSERNAME\tSTATUS\tEXPIRES")
	for _, u := range users {
		expiry := "-"
		if u.ExpiresAt != nil {
			expiry = u.ExpiresAt.Format("2006-01-02")
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", u.ID, u.Username, dashboard.ClassifyStatus(u, now), expiry)
	}
	return a.out.Flush()
}

func (a *cli) userCreate(ctx context.Context, args []string, expires string) error {
	if len(args) < 2 {
		return fmt.Errorf("user-create requires a username")
	}
	password, err := promptPassword("Password for new account: ")
	if err != nil {
		return err
	}
	input := dashboard.CreateUserInput{Username: args[1], Password: password}
	if expires != "" {
		t, err := time.Parse("2006-01-02", expires)
		if err != nil {
			return fmt.Errorf("invalid -expires value %q: %w", expires, err)
		}
		input.ExpiresAt = &t
	}
	panel := dashboard.NewUserAdminPanel(a.client)
	user, err := panel.Create(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s (%s).\n", user.Username, user.ID)
	return nil
}

func (a *cli) userUpdate(ctx context.Context, args []string, expires string, clearExpiry, setPassword bool) error {
	if len(args) < 2 {
		return fmt.Errorf("user-update requires an account id")
	}
	var input dashboard.UpdateUserInput
	if setPassword {
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		input.Password = password
	}
	switch {
	case clearExpiry:
		input.ClearExpiry = true
	case expires != "":
		t, err := time.Parse("2006-01-02", expires)
		if err != nil {
			return fmt.Errorf("invalid -expires value %q: %w", expires, err)
		}
		input.ExpiresAt = &t
	}
	if !setPassword && !clearExpiry && expires == "" {
		return fmt.Errorf("user-update needs -password, -expires or -clear-expiry")
	}
	panel := dashboard.NewUserAdminPanel(a.client)
	user, err := panel.Update(ctx, args[1], input)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s.\n", user.Username)
	return nil
}

func (a *cli) userToggle(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("user-toggle requires an account id")
	}
	panel := dashboard.NewUserAdminPanel(a.client)
	result, err := panel.ToggleActive(ctx, args[1])
	if err != nil {
		return err
	}
	state := "disabled"
	if result.IsActive {
		state = "enabled"
	}
	fmt.Printf("Account %s is now %s.\n", result.ID, state)
	return nil
}

func (a *cli) userDelete(ctx context.Context, args []string, confirmed bool) error {
	if len(args) < 2 {
		return fmt.Errorf("user-delete requires an account id")
	}
	if !confirmed && !promptYes(fmt.Sprintf("Delete account %s? [y/N] ", args[1])) {
		fmt.Println("Aborted.")
		return nil
	}
	panel := dashboard.NewUserAdminPanel(a.client)
	if err := panel.Delete(ctx, args[1]); err != nil {
		return err
	}
	fmt.Println("Account deleted.")
	return nil
}

// report turns client errors into user-facing messages. The bare sentinel
// means no stored session; an *AuthError already carries the backend's
// reason and passes through as is.
func report(err error) error {
	if err == dashboard.ErrUnauthorized {
		return fmt.Errorf("not logged in, run: dashboard login <username>")
	}
	return err
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	// Piped input, read a line
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptYes(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "a7dashboard", "credentials.json")
}

func configured(set bool) string {
	if set {
		return "configured"
	}
	return "not set"
}

func probe(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
