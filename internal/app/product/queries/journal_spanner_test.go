package queries_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
	"github.com/murkotick/product-sync-service/internal/app/product/fakecatalog"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	"github.com/murkotick/product-sync-service/internal/app/product/queries"
	"github.com/murkotick/product-sync-service/internal/app/product/repo"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/delete_product"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
	committer "github.com/murkotick/product-sync-service/internal/pkg/committer"
)

// These tests run against the Spanner emulator and are skipped without
// SPANNER_EMULATOR_HOST. Each run uses a fresh database.
var (
	spClient *spanner.Client
	clk      *clock.FakeClock
)

func TestMain(m *testing.M) {
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		os.Exit(m.Run())
	}

	clk = clock.NewFake(time.Now().UTC().Truncate(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	projectID := env("SPANNER_PROJECT_ID", "test-project")
	instanceID := env("SPANNER_INSTANCE_ID", "emulator-instance")
	databaseID := fmt.Sprintf("journal_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:20])

	parent := fmt.Sprintf("projects/%s", projectID)
	instName := fmt.Sprintf("%s/instances/%s", parent, instanceID)
	dbName := fmt.Sprintf("%s/databases/%s", instName, databaseID)

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("instance admin client: %v", err))
	}
	defer instAdmin.Close()

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		panic(fmt.Sprintf("database admin client: %v", err))
	}
	defer dbAdmin.Close()

	ensureInstance(ctx, instAdmin, parent, instName, instanceID)

	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_initial_schema.sql"))
	if err != nil {
		panic(fmt.Sprintf("read DDL: %v", err))
	}
	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
		ExtraStatements: splitDDL(string(ddl)),
	})
	if err != nil {
		panic(fmt.Sprintf("CreateDatabase: %v", err))
	}
	if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateDatabase wait: %v", err))
	}

	spClient, err = spanner.NewClient(ctx, dbName)
	if err != nil {
		panic(fmt.Sprintf("spanner.NewClient: %v", err))
	}

	code := m.Run()

	spClient.Close()
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Minute)
	defer cancel2()
	_ = dbAdmin.DropDatabase(ctx2, &databasepb.DropDatabaseRequest{Database: dbName})

	os.Exit(code)
}

func ensureInstance(ctx context.Context, admin *instance.InstanceAdminClient, parent, instName, instanceID string) {
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName})
	if err == nil {
		return
	}
	if status.Code(err) != codes.NotFound {
		panic(fmt.Sprintf("GetInstance: %v", err))
	}

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", parent),
			DisplayName: "Journal Test Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			panic(fmt.Sprintf("CreateInstance: %v", err))
		}
		return
	}
	if _, err := op.Wait(ctx); err != nil {
		panic(fmt.Sprintf("CreateInstance wait: %v", err))
	}
}

func splitDDL(sql string) []string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(sql, "\r\n", "\n"), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			kept = append(kept, line)
		}
	}
	var out []string
	for _, p := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEmulator(t *testing.T) {
	t.Helper()
	if spClient == nil {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}
}

func newDispatcher(catalog *fakecatalog.Catalog) *actions.Dispatcher {
	rec := &shared.Recorder{
		RunRepo:    repo.NewRunRepo(),
		OutboxRepo: repo.NewOutboxRepo(),
		Committer:  committer.NewAdapter(spClient),
	}
	locks := locker.New()
	return actions.NewDispatcher(
		update_product.NewInteractor(catalog, pipeline.New(catalog), locks, rec, clk, nil),
		delete_product.NewInteractor(catalog, locks, rec, clk, nil),
		create_product.NewInteractor(catalog, rec, clk, nil),
		nil,
	)
}

type outboxRow struct {
	EventType string
	RunID     string
	Status    string
}

func fetchOutbox(ctx context.Context, t *testing.T, aggregateID string) []outboxRow {
	t.Helper()

	iter := spClient.Single().Query(ctx, spanner.Statement{
		SQL: `SELECT event_type, run_id, status FROM outbox_events
		      WHERE aggregate_id = @id ORDER BY created_at, event_id`,
		Params: map[string]interface{}{"id": aggregateID},
	})
	defer iter.Stop()

	var out []outboxRow
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)
		var r outboxRow
		require.NoError(t, row.Columns(&r.EventType, &r.RunID, &r.Status))
		out = append(out, r)
	}
}

func TestJournal_UpdateRunIsRecorded(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	productID := "gid://shopify/Product/" + uuid.NewString()
	catalog := fakecatalog.New()
	catalog.Images[productID] = []domain.ImageRef{{ID: "A"}, {ID: "B"}}
	catalog.Fail("CreateImage:bad", fakecatalog.Failure{UserError: "Image is too large"})

	resp := newDispatcher(catalog).Dispatch(ctx, dto.ActionForm{
		Action:            dto.ActionUpdateProduct,
		ProductID:         productID,
		Title:             "Board",
		Price:             "10",
		NewImages:         `["good","bad"]`,
		RemainingImageIDs: `["B"]`,
	})
	require.Equal(t, "Image is too large", resp.Body.Message)

	journal := queries.NewSpannerJournal(spClient)
	run, err := journal.GetRun(ctx, resp.RunID)
	require.NoError(t, err)

	assert.Equal(t, productID, run.ProductID)
	assert.Equal(t, "updateProduct", run.Action)
	assert.Equal(t, string(domain.StateFailed), run.State)
	assert.Equal(t, "error", run.Status)
	assert.Equal(t, string(domain.CausePartial), run.Cause)
	require.Len(t, run.Steps, 4)
	assert.Equal(t, "delete_image", run.Steps[1].Kind)
	assert.False(t, run.Steps[3].Success)

	events := fetchOutbox(ctx, t, productID)
	require.Len(t, events, 1)
	assert.Equal(t, "product.reconcile_failed", events[0].EventType)
	assert.Equal(t, resp.RunID, events[0].RunID)
	assert.Equal(t, "pending", events[0].Status)
}

func TestJournal_ListRunsNewestFirst(t *testing.T) {
	requireEmulator(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	productID := "gid://shopify/Product/" + uuid.NewString()
	d := newDispatcher(fakecatalog.New())

	first := d.Dispatch(ctx, dto.ActionForm{Action: dto.ActionUpdateProduct, ProductID: productID, Title: "A", Price: "1"})
	clk.Advance(time.Minute)
	second := d.Dispatch(ctx, dto.ActionForm{Action: dto.ActionDeleteProduct, ProductID: productID})

	journal := queries.NewSpannerJournal(spClient)
	runs, err := journal.ListRuns(ctx, productID, 10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, first.RunID, runs[1].RunID)

	page, err := journal.ListRuns(ctx, productID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.RunID, page[0].RunID)

	events := fetchOutbox(ctx, t, productID)
	require.Len(t, events, 2)
	assert.Equal(t, "product.reconciled", events[0].EventType)
	assert.Equal(t, "product.deleted", events[1].EventType)
}

func TestJournal_UnknownRun(t *testing.T) {
	requireEmulator(t)

	_, err := queries.NewSpannerJournal(spClient).GetRun(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, spanner.ErrRowNotFound)
}

func TestDisabledJournal(t *testing.T) {
	_, err := queries.DisabledJournal{}.GetRun(context.Background(), "r1")
	require.ErrorIs(t, err, queries.ErrJournalDisabled)

	_, err = queries.DisabledJournal{}.ListRuns(context.Background(), "p1", 10, 0)
	require.ErrorIs(t, err, queries.ErrJournalDisabled)
}
