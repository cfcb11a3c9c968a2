// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con un TxRunner que simula transacciones por snapshot/rollback.
// Se usa en tests de casos de uso y como backend de desarrollo sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// Store guarda todas las entidades en mapas por ID. Los repos devuelven copias:
// mutar una entidad devuelta no afecta el store hasta llamar Update.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex // serializa transacciones completas del TxRunner

	products      map[string]entity.Product
	batches       map[string]entity.ProductBatch
	productStores map[string]entity.ProductStore // clave productID|storeID
	sales         map[string]entity.Sale
	saleDetails   map[string]entity.SaleDetail
	movements     map[string]entity.InventoryMovement
	receipts      map[string]entity.Receipt
	stores        map[string]entity.Store
	users         map[string]entity.User
	clients       map[string]entity.Client
	categories    map[string]entity.Category
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:      map[string]entity.Product{},
		batches:       map[string]entity.ProductBatch{},
		productStores: map[string]entity.ProductStore{},
		sales:         map[string]entity.Sale{},
		saleDetails:   map[string]entity.SaleDetail{},
		movements:     map[string]entity.InventoryMovement{},
		receipts:      map[string]entity.Receipt{},
		stores:        map[string]entity.Store{},
		users:         map[string]entity.User{},
		clients:       map[string]entity.Client{},
		categories:    map[string]entity.Category{},
	}
}

func psKey(productID, storeID string) string { return productID + "|" + storeID }

// Repos devuelve el conjunto de repositorios atados al store.
func (s *Store) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Movements:   s.Movements(),
		Batches:     s.Batches(),
		Stock:       s.Stock(),
		Sales:       s.Sales(),
		SaleDetails: s.SaleDetails(),
		Receipts:    s.Receipts(),
	}
}

// Accesores por puerto.
func (s *Store) Products() repository.ProductRepository            { return &productRepo{s} }
func (s *Store) Batches() repository.ProductBatchRepository        { return &batchRepo{s} }
func (s *Store) Stock() repository.ProductStoreRepository          { return &productStoreRepo{s} }
func (s *Store) Sales() repository.SaleRepository                  { return &saleRepo{s} }
func (s *Store) SaleDetails() repository.SaleDetailRepository      { return &saleDetailRepo{s} }
func (s *Store) Movements() repository.InventoryMovementRepository { return &movementRepo{s} }
func (s *Store) Receipts() repository.ReceiptRepository            { return &receiptRepo{s} }
func (s *Store) Stores() repository.StoreRepository                { return &storeRepo{s} }
func (s *Store) Users() repository.UserRepository                  { return &userRepo{s} }
func (s *Store) Clients() repository.ClientRepository              { return &clientRepo{s} }
func (s *Store) Categories() repository.CategoryRepository         { return &categoryRepo{s} }

// snapshot copia todos los mapas para poder restaurarlos en rollback.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Store{
		products:      cloneMap(s.products),
		batches:       cloneMap(s.batches),
		productStores: cloneMap(s.productStores),
		sales:         cloneMap(s.sales),
		saleDetails:   cloneMap(s.saleDetails),
		movements:     cloneMap(s.movements),
		receipts:      cloneMap(s.receipts),
		stores:        cloneMap(s.stores),
		users:         cloneMap(s.users),
		clients:       cloneMap(s.clients),
		categories:    cloneMap(s.categories),
	}
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.batches = snap.batches
	s.productStores = snap.productStores
	s.sales = snap.sales
	s.saleDetails = snap.saleDetails
	s.movements = snap.movements
	s.receipts = snap.receipts
	s.stores = snap.stores
	s.users = snap.users
	s.clients = snap.clients
	s.categories = snap.categories
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn contra el store y, si falla, restaura el snapshot previo
// para conservar la semántica de rollback de las transacciones reales. Las
// transacciones se serializan entre sí, igual que lo hacen los locks de fila
// (SELECT FOR UPDATE) en el backend real: dos Run concurrentes nunca
// intercalan sus lecturas y escrituras.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repos del store; en error restaura el estado previo.
func (r *TxRunner) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	snap := r.store.snapshot()
	if err := fn(r.store.Repos()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ---- productos ----

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Code == p.Code || (p.Barcode != "" && existing.Barcode == p.Barcode) {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// ---- lotes ----

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(b *entity.ProductBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.batches {
		if existing.ProductID == b.ProductID && existing.BatchCode == b.BatchCode {
			return domain.ErrDuplicate
		}
	}
	r.s.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

// GetByIDForUpdate no bloquea: el runner en memoria serializa por mutex.
func (r *batchRepo) GetByIDForUpdate(id string) (*entity.ProductBatch, error) {
	return r.GetByID(id)
}

func (r *batchRepo) GetByCode(code string) (*entity.ProductBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.BatchCode == code {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *batchRepo) UpdateQuantity(id string, currentQuantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.CurrentQuantity = currentQuantity
	b.UpdatedAt = time.Now()
	r.s.batches[id] = b
	return nil
}

func (r *batchRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.ProductBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			b := b
			all = append(all, &b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExpirationDate.Before(all[j].ExpirationDate) })
	return paginate(all, limit, offset), nil
}

func (r *batchRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.batches, id)
	return nil
}

// ---- stock por tienda ----

type productStoreRepo struct{ s *Store }

func (r *productStoreRepo) Get(productID, storeID string) (*entity.ProductStore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ps, ok := r.s.productStores[psKey(productID, storeID)]; ok {
		return &ps, nil
	}
	return nil, nil
}

func (r *productStoreRepo) GetForUpdate(productID, storeID string) (*entity.ProductStore, error) {
	return r.Get(productID, storeID)
}

func (r *productStoreRepo) Upsert(ps *entity.ProductStore) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ps.UpdatedAt = time.Now()
	r.s.productStores[psKey(ps.ProductID, ps.StoreID)] = *ps
	return nil
}

// ---- ventas ----

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if s, ok := r.s.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *saleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) Update(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sales, id)
	return nil
}

// ---- líneas de venta ----

type saleDetailRepo struct{ s *Store }

func (r *saleDetailRepo) Create(d *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.saleDetails[d.ID] = *d
	return nil
}

func (r *saleDetailRepo) GetByID(id string) (*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.saleDetails[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *saleDetailRepo) Update(d *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.saleDetails[d.ID] = *d
	return nil
}

func (r *saleDetailRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.saleDetails, id)
	return nil
}

func (r *saleDetailRepo) ListBySale(saleID string) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.SaleDetail
	for _, d := range r.s.saleDetails {
		if d.SaleID == saleID {
			d := d
			all = append(all, &d)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

// ---- movimientos ----

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[m.ID] = *m
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.movements[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		m := m
		all = append(all, &m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *movementRepo) ListByBatch(batchID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.BatchID != nil && *m.BatchID == batchID {
			m := m
			all = append(all, &m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *movementRepo) ListByReference(referenceID, referenceType string) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID && m.ReferenceType == referenceType {
			m := m
			all = append(all, &m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (r *movementRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movements, id)
	return nil
}

// ---- recibos ----

type receiptRepo struct{ s *Store }

func (r *receiptRepo) Create(rec *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.receipts {
		if existing.SaleID == rec.SaleID || existing.ReceiptNumber == rec.ReceiptNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.receipts[rec.ID] = *rec
	return nil
}

func (r *receiptRepo) GetByID(id string) (*entity.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.receipts[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

// GetByIDForUpdate no bloquea fila: el runner en memoria serializa la
// transacción completa.
func (r *receiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	return r.GetByID(id)
}

func (r *receiptRepo) GetBySaleID(saleID string) (*entity.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.receipts {
		if rec.SaleID == saleID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *receiptRepo) Update(rec *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receipts[rec.ID] = *rec
	return nil
}

func (r *receiptRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.receipts, id)
	return nil
}

// ---- tiendas ----

type storeRepo struct{ s *Store }

func (r *storeRepo) Create(st *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.stores {
		if existing.Code == st.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.stores[st.ID] = *st
	return nil
}

func (r *storeRepo) GetByID(id string) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.stores[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r *storeRepo) List(limit, offset int) ([]*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Store, 0, len(r.s.stores))
	for _, st := range r.s.stores {
		st := st
		all = append(all, &st)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ---- usuarios ----

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// ---- clientes ----

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.clients {
		if existing.Document == c.Document {
			return domain.ErrDuplicate
		}
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *clientRepo) List(limit, offset int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ---- categorías ----

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *categoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func paginate[T any](all []*T, limit, offset int) []*T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
