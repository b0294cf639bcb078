// Package rules holds the static data-quality rule catalog.
// The catalog is the ground truth for what each rule code means; the
// narrative prompt embeds these definitions so the model does not guess.
package rules

// Definition is the human-meaning metadata for one DQ rule.
type Definition struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Meaning   string `json:"meaning"`
	Risk      string `json:"risk"`
	OwnerHint string `json:"ownerHint"`
}

// Catalog maps rule codes to their definitions.
type Catalog map[string]Definition

// Lookup returns the definition for a rule code, reporting whether one exists.
func (c Catalog) Lookup(code string) (Definition, bool) {
	def, ok := c[code]
	return def, ok
}

// Default returns the hand-maintained catalog for the ledger DQ rules.
// Every rule the evaluation engine can emit should have an entry here;
// consumers must still tolerate codes that do not.
func Default() Catalog {
	return Catalog{
		"DQ-01": {
			Code:      "DQ-01",
			Title:     "Transfer must have exactly 2 transaction rows",
			Meaning:   "Each transferId must appear in exactly 2 rows in Transaction: one OUT from the fromAccount and one IN into the toAccount.",
			Risk:      "Ledger imbalance and reconciliation breaks (missing debit/credit). Can lead to incorrect balances and audit issues.",
			OwnerHint: "Backend/Data Engineering",
		},
		"DQ-02": {
			Code:      "DQ-02",
			Title:     "Transfer must have exactly 1 IN and 1 OUT",
			Meaning:   "For a given transferId, there must be exactly one IN transaction and exactly one OUT transaction (i.e., not 2 IN or 2 OUT).",
			Risk:      "One-sided or duplicated ledger entries (2 IN / 2 OUT) can create balance inaccuracies, reconciliation breaks, and high-severity financial correctness issues.",
			OwnerHint: "Backend/Data Engineering",
		},
		"DQ-03": {
			Code:      "DQ-03",
			Title:     "Transaction direction must match account role in transfer",
			Meaning:   "If transaction.accountId = transfer.fromAccount then direction must be OUT. If transaction.accountId = transfer.toAccount then direction must be IN. No other accountId is allowed for that transferId.",
			Risk:      "Reversed accounting entries and incorrect balance movement; can mask fraud or create disputes.",
			OwnerHint: "Backend/Data Engineering",
		},
		"DQ-04": {
			Code:      "DQ-04",
			Title:     "Transfer amount must match linked transaction amounts",
			Meaning:   "For transactions linked to a transfer (transaction.transferId IS NOT NULL), transaction.amount must equal transfer.amount.",
			Risk:      "Money mismatch between transfer record and ledger entries; breaks audit trail and financial reporting accuracy.",
			OwnerHint: "Backend/Data Engineering",
		},
		"DQ-05": {
			Code:      "DQ-05",
			Title:     "Transfer accounts must have the same currency",
			Meaning:   "transfer.fromAccount and transfer.toAccount must have the same account.currency (no implicit FX).",
			Risk:      "Cross-currency movement without FX engine/valuation. Causes incorrect amounts, reporting errors, and compliance risk.",
			OwnerHint: "Backend/Data Engineering / Product",
		},
		"DQ-C01": {
			Code:      "DQ-C01",
			Title:     "ACTIVE customer must have at least one account",
			Meaning:   "If customer.status = ACTIVE, the customer must have at least one related Account row.",
			Risk:      "Broken onboarding / inconsistent customer state; downstream services assume accounts exist and may fail or mis-report.",
			OwnerHint: "Backend / Product Ops",
		},
		"DQ-A01": {
			Code:      "DQ-A01",
			Title:     "ACTIVE account should have at least one transaction",
			Meaning:   "If account.status = ACTIVE, the account should have at least one Transaction row (otherwise it may be a ghost/unused account).",
			Risk:      "Operational anomalies (ghost accounts), potential fraud/abuse surface, and incorrect KPI reporting (active but unused).",
			OwnerHint: "Backend / Ops / Fraud monitoring",
		},
		"DQ-A02": {
			Code:      "DQ-A02",
			Title:     "Account involved in cross-currency transfer context",
			Meaning:   "Flags accounts whose TRANSFER transactions imply a cross-currency movement: the counterparty account on the same transfer has a different currency (should not happen unless an FX workflow exists).",
			Risk:      "If FX is not supported, cross-currency transfers can corrupt ledger integrity, misstate amounts/reporting, and require manual remediation.",
			OwnerHint: "Backend/Data Engineering / Product",
		},
	}
}
