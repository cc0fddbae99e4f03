package receivable

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula o acesso aos recebíveis.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// CreateInBatch cria múltiplas entradas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(entries []models.ReceivableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.DB.Create(&entries).Error
}

func (r *Repository) FindByID(id uint) (*models.ReceivableEntry, error) {
	var e models.ReceivableEntry
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByClient devolve o cronograma do cliente ordenado por mês.
func (r *Repository) ListByClient(clientID uint) ([]models.ReceivableEntry, error) {
	var entries []models.ReceivableEntry
	err := r.DB.
		Where("client_id = ?", clientID).
		Order("month ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *Repository) CountByClient(clientID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&models.ReceivableEntry{}).Where("client_id = ?", clientID).Count(&n).Error
	return n, err
}

// DeleteByIDs apaga de fato (recebível não tem soft delete).
func (r *Repository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Delete(&models.ReceivableEntry{}, ids).Error
}

// DeleteOpenByClient apaga as entradas em aberto (usado quando o cliente é removido).
// Entradas com fatura ficam, mesmo vencidas.
func (r *Repository) DeleteOpenByClient(clientID uint) error {
	return r.DB.
		Where("client_id = ? AND status IN ? AND invoice_id IS NULL", clientID, []models.ReceivableStatus{models.ReceivablePending, models.ReceivableOverdue}).
		Delete(&models.ReceivableEntry{}).Error
}

// UpdateStatus grava o status e a data de pagamento.
func (r *Repository) UpdateStatus(e *models.ReceivableEntry) error {
	return r.DB.Model(&models.ReceivableEntry{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"status":     e.Status,
			"paid_at":    e.PaidAt,
			"invoice_id": e.InvoiceID,
		}).Error
}

// ListPendingBefore devolve as entradas pendentes de meses anteriores a month.
func (r *Repository) ListPendingBefore(month string) ([]models.ReceivableEntry, error) {
	var entries []models.ReceivableEntry
	err := r.DB.
		Where("status = ? AND month < ?", models.ReceivablePending, month).
		Order("client_id ASC, month ASC").
		Find(&entries).Error
	return entries, err
}

// MarkOverdueByIDs muda em lote para overdue, apenas as que ainda estão pendentes.
func (r *Repository) MarkOverdueByIDs(ids []uint, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&models.ReceivableEntry{}).
		Where("id IN ? AND status = ?", ids, models.ReceivablePending).
		Updates(map[string]interface{}{"status": models.ReceivableOverdue, "updated_at": now}).Error
}

// StatusTotal é a soma por status usada no dashboard
type StatusTotal struct {
	Status models.ReceivableStatus `json:"status"`
	Count  int64                   `json:"count"`
	Amount decimal.Decimal         `json:"amount"`
}

// TotalsByStatus soma as entradas do mês informado (ou de todos os meses, se vazio).
func (r *Repository) TotalsByStatus(month string) ([]StatusTotal, error) {
	var entries []models.ReceivableEntry
	q := r.DB.Model(&models.ReceivableEntry{})
	if month != "" {
		q = q.Where("month = ?", month)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}

	byStatus := map[models.ReceivableStatus]*StatusTotal{}
	order := []models.ReceivableStatus{models.ReceivablePending, models.ReceivableOverdue, models.ReceivableInvoiced, models.ReceivablePaid}
	for _, s := range order {
		byStatus[s] = &StatusTotal{Status: s, Amount: decimal.Zero}
	}
	for _, e := range entries {
		t, ok := byStatus[e.Status]
		if !ok {
			continue
		}
		t.Count++
		t.Amount = t.Amount.Add(e.Amount)
	}
	out := make([]StatusTotal, 0, len(order))
	for _, s := range order {
		out = append(out, *byStatus[s])
	}
	return out, nil
}
