package domain

import "testing"

func TestAggregateShares(t *testing.T) {
	txns := []*Transaction{
		{Symbol: "AAA", Name: "AAA Corp", Shares: 10},
		{Symbol: "BBB", Name: "BBB Inc", Shares: 5},
		{Symbol: "AAA", Name: "AAA Corp", Shares: -4},
		{Symbol: "CCC", Name: "CCC Ltd", Shares: 3},
		{Symbol: "CCC", Name: "CCC Ltd", Shares: -3},
	}

	shares, names := AggregateShares(txns)

	if shares["AAA"] != 6 {
		t.Fatalf("expected 6 AAA shares, got %d", shares["AAA"])
	}
	if shares["BBB"] != 5 {
		t.Fatalf("expected 5 BBB shares, got %d", shares["BBB"])
	}
	// Fully sold symbols still appear with a zero aggregate; hiding
	// them is the aggregator's display policy, not the ledger's.
	if shares["CCC"] != 0 {
		t.Fatalf("expected 0 CCC shares, got %d", shares["CCC"])
	}
	if names["AAA"] != "AAA Corp" {
		t.Fatalf("expected name 'AAA Corp', got %q", names["AAA"])
	}
}

func TestAggregateShares_EmptyLedger(t *testing.T) {
	shares, names := AggregateShares(nil)
	if len(shares) != 0 || len(names) != 0 {
		t.Fatalf("expected empty maps, got %v / %v", shares, names)
	}
}

func TestSharesOf(t *testing.T) {
	txns := []*Transaction{
		{Symbol: "AAA", Shares: 10},
		{Symbol: "AAA", Shares: -10},
	}
	if got := SharesOf(txns); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCashDelta(t *testing.T) {
	buy := &Transaction{Shares: 10, Price: dec("50.00"), Kind: KindBuy}
	if !buy.CashDelta().Equal(dec("-500.00")) {
		t.Fatalf("expected buy delta -500.00, got %s", buy.CashDelta())
	}

	sell := &Transaction{Shares: -10, Price: dec("60.00"), Kind: KindSell}
	if !sell.CashDelta().Equal(dec("600.00")) {
		t.Fatalf("expected sell delta 600.00, got %s", sell.CashDelta())
	}
}
