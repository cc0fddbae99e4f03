package models

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

type PricingModel string

const (
	PricingPerSeat     PricingModel = "per_seat"
	PricingFlatMRR     PricingModel = "flat_mrr"
	PricingOneTimeOnly PricingModel = "one_time_only"
)

func (p PricingModel) Valid() bool {
	switch p {
	case PricingPerSeat, PricingFlatMRR, PricingOneTimeOnly:
		return true
	}
	return false
}

// PricingMode indica de onde veio o MRR gravado no cliente.
// derived: calculado pelo sistema (por assento ou apenas receita única).
// manual: informado pelo operador.
type PricingMode string

const (
	PricingDerived PricingMode = "derived"
	PricingManual  PricingMode = "manual"
)

type BillingCycle string

const (
	CycleMonthly    BillingCycle = "Monthly"
	CycleQuarterly  BillingCycle = "Quarterly"
	CycleHalfYearly BillingCycle = "Half Yearly"
	CycleAnnual     BillingCycle = "Annual"
	CycleOneTime    BillingCycle = "One Time"
)

// PeriodMonths retorna quantos meses cada cobrança recorrente cobre.
// One Time retorna 0 (sem cobrança recorrente).
func (c BillingCycle) PeriodMonths() (int, bool) {
	switch c {
	case CycleMonthly:
		return 1, true
	case CycleQuarterly:
		return 3, true
	case CycleHalfYearly:
		return 6, true
	case CycleAnnual:
		return 12, true
	case CycleOneTime:
		return 0, true
	}
	return 0, false
}

func (c BillingCycle) Valid() bool {
	_, ok := c.PeriodMonths()
	return ok
}

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractTerminated ContractStatus = "terminated"
)

func (s ContractStatus) Valid() bool {
	return s == ContractActive || s == ContractTerminated
}

type StreamType string

const (
	StreamSubscription   StreamType = "subscription"
	StreamOneTime        StreamType = "one_time"
	StreamAddOn          StreamType = "add_on"
	StreamManagedService StreamType = "managed_service"
)

func (t StreamType) Valid() bool {
	switch t {
	case StreamSubscription, StreamOneTime, StreamAddOn, StreamManagedService:
		return true
	}
	return false
}

type StreamFrequency string

const (
	FrequencyMonthly   StreamFrequency = "monthly"
	FrequencyQuarterly StreamFrequency = "quarterly"
	FrequencyAnnual    StreamFrequency = "annual"
	FrequencyOneTime   StreamFrequency = "one_time"
)

func (f StreamFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

type ReceivableStatus string

const (
	ReceivablePending  ReceivableStatus = "pending"
	ReceivableInvoiced ReceivableStatus = "invoiced"
	ReceivablePaid     ReceivableStatus = "paid"
	ReceivableOverdue  ReceivableStatus = "overdue"
)

func (s ReceivableStatus) Valid() bool {
	switch s {
	case ReceivablePending, ReceivableInvoiced, ReceivablePaid, ReceivableOverdue:
		return true
	}
	return false
}

// Settled indica status já liquidados; ver também ReceivableEntry.Protected.
func (s ReceivableStatus) Settled() bool {
	return s == ReceivablePaid || s == ReceivableInvoiced
}

type ReceivableKind string

const (
	KindRecurring ReceivableKind = "recurring"
	KindOneTime   ReceivableKind = "one_time"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

type InvoiceStatus string

const (
	InvoiceOpen          InvoiceStatus = "open"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
)

type StatementStatus string

const (
	StatementPending StatementStatus = "pending"
	StatementPaid    StatementStatus = "paid"
)
