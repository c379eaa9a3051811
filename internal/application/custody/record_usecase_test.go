package custody_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferramentaria/ferramentaria-api/internal/application/custody"
	"github.com/ferramentaria/ferramentaria-api/internal/domain"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/entity"
	"github.com/ferramentaria/ferramentaria-api/internal/domain/repository"
	"github.com/ferramentaria/ferramentaria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

// fakeTransactionRepo ledger em memória com seq atribuído na inserção,
// como o bigserial faria.
type fakeTransactionRepo struct {
	mu     sync.Mutex
	seq    int64
	events []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.Seq = f.seq
	cp := *t
	f.events = append(f.events, &cp)
	return nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.events {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// sortDesc ordena do mais recente para o mais antigo, seq como desempate.
func sortDesc(list []*entity.Transaction) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].Seq > list[j].Seq
	})
}

func paginate(list []*entity.Transaction, limit, offset int) []*entity.Transaction {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (f *fakeTransactionRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range f.events {
		if t.ItemID == itemID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sortDesc(out)
	return paginate(out, limit, offset), nil
}

func (f *fakeTransactionRepo) ListByUsuario(_ context.Context, usuarioID string, limit, offset int) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range f.events {
		if t.Usuario.ID == usuarioID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sortDesc(out)
	return paginate(out, limit, offset), nil
}

func (f *fakeTransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range f.events {
		if filter.UsuarioID != "" && t.Usuario.ID != filter.UsuarioID {
			continue
		}
		if filter.ItemID != "" && t.ItemID != filter.ItemID {
			continue
		}
		if filter.Tipo != "" && t.Tipo != filter.Tipo {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sortDesc(out)
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (f *fakeTransactionRepo) CountByUsuarioAndTipo(_ context.Context, usuarioID, tipo string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.events {
		if t.Usuario.ID == usuarioID && t.Tipo == tipo {
			count++
		}
	}
	return count, nil
}

func (f *fakeTransactionRepo) LatestPerItem(_ context.Context) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	latest := map[string]*entity.Transaction{}
	for _, t := range f.events {
		cur, ok := latest[t.ItemID]
		if !ok || t.Timestamp.After(cur.Timestamp) ||
			(t.Timestamp.Equal(cur.Timestamp) && t.Seq > cur.Seq) {
			cp := *t
			latest[t.ItemID] = &cp
		}
	}
	out := make([]*entity.Transaction, 0, len(latest))
	for _, t := range latest {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTransactionRepo) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// fakeTxRunner serializa por item com um mutex por chave, emulando o
// advisory lock do banco.
type fakeTxRunner struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	repo  *fakeTransactionRepo
}

func newFakeTxRunner(repo *fakeTransactionRepo) *fakeTxRunner {
	return &fakeTxRunner{locks: map[string]*sync.Mutex{}, repo: repo}
}

func (f *fakeTxRunner) RunTransacao(_ context.Context, itemID string, fn func(repository.TransactionRepository) error) error {
	f.mu.Lock()
	l, ok := f.locks[itemID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[itemID] = l
	}
	f.mu.Unlock()
	l.Lock()
	defer l.Unlock()
	return fn(f.repo)
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	m := map[string]*entity.Item{}
	for _, i := range items {
		m[i.ID] = i
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeItemRepo) GetByCodigoInterno(_ context.Context, codigo string) (*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.items {
		if i.CodigoInterno == codigo {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) GetByRFID(_ context.Context, rfid string) (*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.items {
		if i.RFID == rfid && rfid != "" {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]*entity.Item, error) {
	return nil, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) MaxCodigoInterno(_ context.Context, prefixo string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := ""
	for _, i := range f.items {
		c := i.CodigoInterno
		if len(c) > len(prefixo) && c[:len(prefixo)+1] == prefixo+"-" && c > max {
			max = c
		}
	}
	return max, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := map[string]*entity.User{}
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByCPF(_ context.Context, cpf string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.CPF == cpf {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByRFID(_ context.Context, rfid string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RFID == rfid && rfid != "" {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *bool, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fixture struct {
	txRepo   *fakeTransactionRepo
	recordUC *custody.RecordTransactionUseCase
	statusUC *custody.StatusUseCase
}

func newFixture(t *testing.T, items []*entity.Item, users []*entity.User) *fixture {
	t.Helper()
	txRepo := &fakeTransactionRepo{}
	itemRepo := newFakeItemRepo(items...)
	userRepo := newFakeUserRepo(users...)
	runner := newFakeTxRunner(txRepo)
	log := testLogger()
	return &fixture{
		txRepo:   txRepo,
		recordUC: custody.NewRecordTransactionUseCase(runner, itemRepo, userRepo, log),
		statusUC: custody.NewStatusUseCase(txRepo, itemRepo, log),
	}
}

func testItem(id string) *entity.Item {
	return &entity.Item{ID: id, CodigoInterno: "MART-00001", ModeloID: "modelo-1", Ativo: true}
}

func testUser(id, nome, cpf string) *entity.User {
	return &entity.User{ID: id, Nome: nome, CPF: cpf, Role: entity.RoleFuncionario, Ativo: true}
}

func retirada(itemID, usuarioID string) custody.TransactionInputDTO {
	return custody.TransactionInputDTO{UsuarioID: usuarioID, ItemID: itemID, Tipo: entity.TransactionTypeRetirada}
}

func devolucao(itemID, usuarioID string) custody.TransactionInputDTO {
	return custody.TransactionInputDTO{UsuarioID: usuarioID, ItemID: itemID, Tipo: entity.TransactionTypeDevolucao}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_RetiradaDeixaItemEmprestado(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	tx, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeRetirada, tx.Tipo)
	assert.Equal(t, "Ana", tx.Usuario.Nome, "o evento deve carregar o snapshot do usuário")

	status, err := fx.statusUC.GetItemStatus(ctx, "item-1")
	require.NoError(t, err)
	assert.False(t, status.Disponivel)

	holder, err := fx.statusUC.GetCurrentHolder(ctx, "item-1")
	require.NoError(t, err)
	require.NotNil(t, holder.Usuario)
	assert.Equal(t, "user-a", holder.Usuario.ID)
	require.NotNil(t, holder.Desde)
}

func TestRecord_DevolucaoLiberaItem(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	require.NoError(t, err)

	status, err := fx.statusUC.GetItemStatus(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, status.Disponivel)

	holder, err := fx.statusUC.GetCurrentHolder(ctx, "item-1")
	require.NoError(t, err)
	assert.Nil(t, holder.Usuario, "item devolvido não tem responsável")
}

func TestRecord_RetiradaDuplaRetornaItemEmUso(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t,
		[]*entity.Item{testItem("item-1")},
		[]*entity.User{
			testUser("user-a", "Ana", "111.111.111-11"),
			testUser("user-b", "Bruno", "222.222.222-22"),
		})

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)

	_, err = fx.recordUC.Record(ctx, retirada("item-1", "user-b"))
	assert.ErrorIs(t, err, domain.ErrItemEmUso)
	assert.Equal(t, 1, fx.txRepo.len(), "a retirada rejeitada não pode gravar nada")
}

func TestRecord_DevolucaoSemHistoricoRetornaInvalido(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, fx.txRepo.len(), "o ledger deve permanecer intacto")
}

func TestRecord_DevolucaoDuplaRetornaConflito(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	require.NoError(t, err)

	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 2, fx.txRepo.len())
}

func TestRecord_UsuarioInexistente(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, nil)

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "fantasma"))
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestRecord_ItemInexistente(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, nil, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, retirada("fantasma", "user-a"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecord_TipoInvalido(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, custody.TransactionInputDTO{
		UsuarioID: "user-a", ItemID: "item-1", Tipo: "emprestimo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// N retiradas concorrentes do mesmo item: exatamente uma vence, as demais
// recebem ErrItemEmUso e o ledger fica com um único evento.
func TestRecord_RetiradasConcorrentes_ApenasUmaVence(t *testing.T) {
	const n = 20
	ctx := context.Background()

	users := make([]*entity.User, n)
	for i := range users {
		users[i] = testUser(
			"user-"+string(rune('a'+i)),
			"Usuário "+string(rune('A'+i)),
			"000.000.000-0"+string(rune('0'+i%10)),
		)
	}
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, users)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.recordUC.Record(ctx, retirada("item-1", users[i].ID))
		}(i)
	}
	wg.Wait()

	sucessos := 0
	for _, err := range errs {
		if err == nil {
			sucessos++
		} else {
			assert.ErrorIs(t, err, domain.ErrItemEmUso)
		}
	}
	assert.Equal(t, 1, sucessos, "exatamente uma retirada deve vencer")
	assert.Equal(t, 1, fx.txRepo.len())
}

func TestStatus_ItensEmprestados(t *testing.T) {
	ctx := context.Background()
	userA := testUser("user-a", "Ana", "111.111.111-11")
	userB := testUser("user-b", "Bruno", "222.222.222-22")
	fx := newFixture(t,
		[]*entity.Item{testItem("item-1"), testItem("item-2"), testItem("item-3")},
		[]*entity.User{userA, userB})

	// item-1: retirado e devolvido; item-2: retirado por B; item-3: nunca movido
	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, retirada("item-2", "user-b"))
	require.NoError(t, err)

	emprestados, err := fx.statusUC.GetAllBorrowedItems(ctx)
	require.NoError(t, err)
	require.Len(t, emprestados, 1)
	assert.Equal(t, "item-2", emprestados[0].ItemID)
	assert.Equal(t, "user-b", emprestados[0].Usuario.ID)
}

func TestStatus_EstatisticasDoUsuario(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t,
		[]*entity.Item{testItem("item-1"), testItem("item-2")},
		[]*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, retirada("item-2", "user-a"))
	require.NoError(t, err)

	stats, err := fx.statusUC.GetUserStats(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRetiradas)
	assert.Equal(t, 1, stats.TotalDevolucoes)
	assert.Equal(t, 1, stats.ItensAtivos, "apenas item-2 segue em mãos")
}

func TestStatus_HistoricoDoUsuarioOrdenado(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, []*entity.Item{testItem("item-1")}, []*entity.User{testUser("user-a", "Ana", "111.111.111-11")})

	_, err := fx.recordUC.Record(ctx, retirada("item-1", "user-a"))
	require.NoError(t, err)
	_, err = fx.recordUC.Record(ctx, devolucao("item-1", "user-a"))
	require.NoError(t, err)

	hist, err := fx.statusUC.GetUserHistory(ctx, "user-a", 10, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.TransactionTypeDevolucao, hist[0].Tipo, "o mais recente vem primeiro")
	assert.Equal(t, entity.TransactionTypeRetirada, hist[1].Tipo)
	assert.True(t, !hist[0].Timestamp.Before(hist[1].Timestamp))
}

// Timestamps empatados são desempatados pela ordem de inserção (seq).
func TestStatus_EmpateDeTimestampDesempataPorSeq(t *testing.T) {
	ctx := context.Background()
	txRepo := &fakeTransactionRepo{}
	itemRepo := newFakeItemRepo(testItem("item-1"))
	log := testLogger()
	statusUC := custody.NewStatusUseCase(txRepo, itemRepo, log)

	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	snap := entity.UsuarioSnapshot{ID: "user-a", Nome: "Ana", CPF: "111.111.111-11"}
	require.NoError(t, txRepo.Create(ctx, &entity.Transaction{
		ID: "t1", ItemID: "item-1", Usuario: snap,
		Tipo: entity.TransactionTypeRetirada, Timestamp: ts, CreatedAt: ts,
	}))
	require.NoError(t, txRepo.Create(ctx, &entity.Transaction{
		ID: "t2", ItemID: "item-1", Usuario: snap,
		Tipo: entity.TransactionTypeDevolucao, Timestamp: ts, CreatedAt: ts,
	}))

	status, err := statusUC.GetItemStatus(ctx, "item-1")
	require.NoError(t, err)
	require.NotNil(t, status.UltimaTransacao)
	assert.Equal(t, "t2", status.UltimaTransacao.ID, "inserido por último vence o empate")
	assert.True(t, status.Disponivel)
}
