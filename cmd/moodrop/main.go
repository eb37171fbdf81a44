// Command moodrop is the MoodRop companion CLI. It drives the perfume
// service's discovery flow from the terminal: browse the mood catalog,
// browse the ingredient catalog, run the two-stage recommendation flow and
// list saved recipes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/the-sleepless-coder/moodrop-companion/internal/api"
	"github.com/the-sleepless-coder/moodrop-companion/internal/catalog"
	"github.com/the-sleepless-coder/moodrop-companion/internal/config"
	"github.com/the-sleepless-coder/moodrop-companion/internal/device"
	"github.com/the-sleepless-coder/moodrop-companion/internal/events"
	"github.com/the-sleepless-coder/moodrop-companion/internal/recipe"
	"github.com/the-sleepless-coder/moodrop-companion/internal/recommend"
	"github.com/the-sleepless-coder/moodrop-companion/internal/session"
	"github.com/the-sleepless-coder/moodrop-companion/internal/storage"
	"github.com/the-sleepless-coder/moodrop-companion/internal/version"
)

var (
	// Application mode flags
	mode        = flag.String("mode", "moods", "Mode: moods | notes | recommend | recipes | dispense")
	showVersion = flag.Bool("version", false, "Print version and exit")
	debugMode   = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugShort  = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")

	// Configuration override flags
	configPath = flag.String("config", "", "Path to config file (default: ~/.moodrop/config.toml)")
	baseURL    = flag.String("base-url", "", "Perfume service base URL (overrides config)")
	deviceID   = flag.String("device-id", "", "Device identifier header value (overrides config)")
	timeout    = flag.Duration("timeout", 0, "Per-request timeout (overrides config)")
	userID     = flag.String("user", "", "User identifier (overrides config)")

	// Recommendation flow flags
	moodIDs   = flag.String("moods", "", "Comma-separated mood IDs to select (e.g., 1,5)")
	page      = flag.Int("page", 1, "Result page for the perfume query")
	sortBy    = flag.String("sort", "", "Sort results: rating | match | year")
	timeOfDay = flag.String("time-of-day", "", "Filter results: day | night")
	seasonOf  = flag.String("season", "", "Filter results: spring | summer | fall | winter")

	// Dispense flags
	recipeID = flag.Int("recipe", 0, "Recipe ID to dispense (with -mode dispense)")

	// Note catalog flags
	noteQuery   = flag.String("note-query", "", "Substring filter for the note catalog")
	noteFamily  = flag.String("note-family", "", "Scent-family filter for the note catalog")
	popularOnly = flag.Bool("popular-only", false, "Keep only popular notes")
	addNotes    = flag.String("add-notes", "", "Comma-separated notes to add to the user inventory")
	removeNotes = flag.String("remove-notes", "", "Comma-separated notes to remove from the user inventory")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("moodrop %s\n", version.GetVersion())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("[Main] Config error: %v", err)
	}

	client, cleanup, err := buildClient(cfg)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	defer cleanup()

	dispatcher := events.NewDispatcher()
	if cfg.App.DebugMode {
		dispatcher.Register(events.NewLogObserver())
	}
	sess := session.New(dispatcher)

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		log.Printf("[Main] Cache disabled: %v", err)
	}
	if closeCache != nil {
		defer closeCache()
	}

	ctx := context.Background()
	switch *mode {
	case "moods":
		err = runMoods(ctx, catalog.NewCategoryService(client, cache))
	case "notes":
		err = runNotes(ctx, cfg, catalog.NewNoteService(client, cache), dispatcher)
	case "recommend":
		err = runRecommend(ctx, cfg, catalog.NewCategoryService(client, cache), recommend.NewService(client), sess)
	case "recipes":
		err = runRecipes(ctx, cfg, recipe.NewService(client))
	case "dispense":
		err = runDispense(ctx, cfg, recipe.NewService(client), sess, dispatcher)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *deviceID != "" {
		cfg.API.DeviceID = *deviceID
	}
	if *timeout > 0 {
		cfg.API.Timeout = timeout.String()
	}
	if *userID != "" {
		cfg.App.UserID = *userID
	}
	if *debugMode || *debugShort {
		cfg.App.DebugMode = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildClient constructs the API client and starts the config watcher so a
// base-URL edit takes effect without a restart.
func buildClient(cfg *config.Config) (*api.Client, func(), error) {
	apiTimeout, err := cfg.APITimeout()
	if err != nil {
		return nil, nil, err
	}

	clientConfig := api.DefaultClientConfig(cfg.API.BaseURL, cfg.API.DeviceID)
	clientConfig.Timeout = apiTimeout
	if cfg.API.RateLimitRPS > 0 {
		clientConfig.RateLimit = rate.Limit(cfg.API.RateLimitRPS)
	}
	client := api.NewClient(clientConfig)

	cleanup := func() {}
	if *configPath != "" {
		watcher, err := config.Watch(*configPath, func(updated *config.Config) {
			log.Printf("[Main] Config reloaded, base URL now %s", updated.API.BaseURL)
			client.SetBaseURL(updated.API.BaseURL)
		})
		if err != nil {
			log.Printf("[Main] Config watcher unavailable: %v", err)
		} else {
			cleanup = watcher.Stop
		}
	}
	return client, cleanup, nil
}

// openCache opens the catalog cache when enabled. Returns a nil cache when
// disabled or unavailable; callers fall back to fresh fetches.
func openCache(cfg *config.Config) (catalog.Cache, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, nil, nil
	}

	path, err := cfg.CachePath()
	if err != nil {
		return nil, nil, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, nil, err
	}

	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		return nil, nil, err
	}
	return storage.NewCacheStore(db, ttl), func() { _ = db.Close() }, nil
}

func runMoods(ctx context.Context, svc *catalog.CategoryService) error {
	result := svc.CategoriesWithMoods(ctx)
	if !result.Success {
		return fmt.Errorf("failed to load mood catalog: %s", result.Message)
	}

	for _, cat := range catalog.ReclassifyCategories(result.Data) {
		fmt.Printf("%s\n", cat.Name)
		for _, mood := range cat.Moods {
			fmt.Printf("  [%d] %s\n", mood.ID, mood.Name)
		}
	}
	return nil
}

func runNotes(ctx context.Context, cfg *config.Config, svc *catalog.NoteService, dispatcher *events.Dispatcher) error {
	if change := inventoryChange(); len(change.Add)+len(change.Remove) > 0 {
		saved := svc.SaveInventory(ctx, cfg.App.UserID, change)
		dispatcher.Dispatch(events.Event{
			Type: events.TypeInventorySaved,
			TypedData: events.InventorySavedEvent{
				Attempted: saved.Attempted,
				Failed:    saved.Failed,
			},
		})
		fmt.Printf("inventory: %d saved, %d failed\n", saved.Attempted-saved.Failed, saved.Failed)
	}

	result := svc.AllDeterminedNotes(ctx)
	if !result.Success {
		return fmt.Errorf("failed to load note catalog: %s", result.Message)
	}

	filter := catalog.NoteFilter{
		Query:       *noteQuery,
		Family:      catalog.Family(*noteFamily),
		PopularOnly: *popularOnly,
	}
	notes := catalog.FilterNotes(result.Data, filter)

	fmt.Printf("%d notes\n", len(notes))
	for _, note := range notes {
		name := note.Name
		if note.KoreanName != "" {
			name = fmt.Sprintf("%s (%s)", note.Name, note.KoreanName)
		}
		fmt.Printf("  %-40s %-8s %s\n", name, note.Type, catalog.FamilyOf(note.Name))
	}
	return nil
}

func runRecommend(ctx context.Context, cfg *config.Config, categories *catalog.CategoryService, svc *recommend.Service, sess *session.Session) error {
	ids, err := parseMoodIDs(*moodIDs)
	if err != nil {
		return err
	}

	// Resolve and select the requested moods, honoring the selection cap.
	for _, id := range ids {
		mood := categories.MoodByID(ctx, id)
		if !mood.Success {
			return fmt.Errorf("failed to resolve mood %d: %s", id, mood.Message)
		}
		if !sess.ToggleMood(mood.Data) {
			log.Printf("[Main] Mood %d ignored, selection is full", id)
		}
	}

	result := svc.Recommend(ctx, cfg.App.UserID, sess.SelectedMoodIDs(), *page)
	if !result.Success {
		return fmt.Errorf("recommendation failed: %s", result.Message)
	}
	sess.SetRecommendation(result.Data)

	perfumes := sess.Perfumes()
	perfumes = recommend.ApplyFilter(perfumes, buildFilter())
	applySort(perfumes)

	total := len(result.Data.Accords)
	fmt.Printf("%d perfumes (%d inventory matches, %d accords)\n", len(perfumes), result.Data.Owned, total)
	for _, p := range perfumes {
		percent := recommend.MatchPercent(p.AccordMatchCount, total)
		fit := recommend.FitOf(percent)
		fmt.Printf("  %-32s %-20s %d  %3d%%  %s\n",
			p.PerfumeName, p.BrandName, p.Year, percent, fit.Label())
	}
	return nil
}

func runRecipes(ctx context.Context, cfg *config.Config, svc *recipe.Service) error {
	result := svc.UserRecipes(ctx, cfg.App.UserID)
	if !result.Success {
		return fmt.Errorf("failed to load recipes: %s", result.Message)
	}

	for _, r := range result.Data {
		fmt.Printf("[%d] %s: %s\n", r.RecipeID, r.PerfumeName, r.Description)
		editor := recipe.FromComposition(r.Composition)
		for _, ing := range editor.Ingredients() {
			fmt.Printf("  %-32s %3d\n", ing.Name, ing.Weight)
		}
		if err := editor.Validate(); err != nil {
			fmt.Printf("  ! %v\n", err)
		}
	}
	return nil
}

// runDispense loads a saved recipe into the slot bank and drives the
// simulated dispenser through a full connect, dispense, disconnect cycle.
func runDispense(ctx context.Context, cfg *config.Config, svc *recipe.Service, sess *session.Session, dispatcher *events.Dispatcher) error {
	if *recipeID == 0 {
		return fmt.Errorf("no recipe selected; pass -recipe <id>")
	}

	result := svc.UserRecipes(ctx, cfg.App.UserID)
	if !result.Success {
		return fmt.Errorf("failed to load recipes: %s", result.Message)
	}

	var editor *recipe.Editor
	var name string
	for _, r := range result.Data {
		if r.RecipeID == *recipeID {
			editor = recipe.FromComposition(r.Composition)
			name = r.PerfumeName
			break
		}
	}
	if editor == nil {
		return fmt.Errorf("recipe %d not found", *recipeID)
	}
	if err := editor.Validate(); err != nil {
		return fmt.Errorf("recipe %d is not dispensable: %w", *recipeID, err)
	}

	// One slot per ingredient, loaded in composition order.
	weights := make(map[string]int, editor.Len())
	for i, ing := range editor.Ingredients() {
		if i >= len(session.SlotLayout) {
			return fmt.Errorf("recipe has %d ingredients but the device has %d slots", editor.Len(), len(session.SlotLayout))
		}
		if err := sess.AssignSlot(session.SlotLayout[i], ing.Name, ""); err != nil {
			return err
		}
		weights[ing.Name] = ing.Weight
	}

	sim := device.NewSimulator(sess.Slots(), dispatcher)
	if err := sim.Connect(ctx); err != nil {
		return fmt.Errorf("device connect failed: %w", err)
	}
	defer sim.Disconnect()

	log.Printf("[Main] Dispensing %q", name)
	if err := sim.DispenseRecipe(ctx, weights); err != nil {
		return fmt.Errorf("dispense failed: %w", err)
	}

	for _, slot := range sess.Slots().Slots() {
		if slot.IsEmpty {
			continue
		}
		fmt.Printf("  slot %-2d %-32s %.1f remaining\n", slot.Slot, slot.Name, slot.Amount)
	}
	return nil
}

func inventoryChange() catalog.InventoryChange {
	return catalog.InventoryChange{
		Add:    splitList(*addNotes),
		Remove: splitList(*removeNotes),
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseMoodIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no moods selected; pass -moods (e.g., -moods 1,5)")
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid mood ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func buildFilter() recommend.Filter {
	var f recommend.Filter
	switch *timeOfDay {
	case "day":
		f.DayNight = recommend.DayNightDay
	case "night":
		f.DayNight = recommend.DayNightNight
	}
	f.Season = recommend.Season(*seasonOf)
	return f
}

func applySort(perfumes []recommend.Perfume) {
	switch *sortBy {
	case "rating":
		recommend.SortByRating(perfumes)
	case "match":
		recommend.SortByAccordMatch(perfumes)
	case "year":
		recommend.SortByYear(perfumes)
	}
}

func init() {
	// Plain log lines; timestamps just add noise in a terminal.
	log.SetFlags(0)
}
