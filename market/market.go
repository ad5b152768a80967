// Package market runs the escrow marketplace for property shares. Sellers
// list a quantity at an asking price, buyers bid, and an accepted offer locks
// the listing for a bounded settlement window. Settlement moves payment and
// shares in one step or not at all.
package market

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sasha-s/go-deadlock"

	"estateshares/config"
	"estateshares/errs"
	"estateshares/sdk"
)

// Market owns all listings and offers. Operations are serialized via the
// mutex so each call sees and leaves a consistent book.
type Market struct {
	mu     deadlock.Mutex
	state  sdk.State
	bank   sdk.Bank
	shares ShareRegistry
	clk    clock.Clock
	events sdk.EventSink

	fee    sdk.Amount
	window time.Duration
	asset  sdk.Asset
}

// New wires a marketplace against its storage, payment bank, share registry
// and clock. The clock decides deal expiry, so tests can inject a mock.
//
// The market assumes the strictly sequential execution model of the
// surrounding environment: while a market operation runs, nothing else
// mutates the ledger or the bank. Settlement pre-validates both and then
// applies its writes; it panics if a pre-validated step fails anyway, because
// that can only mean a concurrent writer broke the single-writer contract.
func New(state sdk.State, bank sdk.Bank, shares ShareRegistry, clk clock.Clock, events sdk.EventSink, settings config.Settings) *Market {
	return &Market{
		state:  state,
		bank:   bank,
		shares: shares,
		clk:    clk,
		events: events,
		fee:    settings.MarketFee,
		window: time.Duration(settings.DealWindowHours) * time.Hour,
		asset:  settings.PaymentAsset,
	}
}

// reviveIfExpired flips an expired pending sale back to active in memory.
// The revert is persisted only together with a succeeding operation, so a
// failed call still leaves storage untouched.
func (m *Market) reviveIfExpired(lst *Listing, now int64) bool {
	if lst.State == ListingPendingSale && now > lst.DealDeadline {
		lst.State = ListingActive
		lst.AcceptedBuyer = sdk.Address("")
		lst.AcceptedPrice = 0
		lst.DealDeadline = 0
		return true
	}
	return false
}

// List opens a sale of quantity shares in a property at the asking price.
// One listing per seller and property; relisting requires unlisting first.
func (m *Market) List(seller sdk.Address, propertyID uint64, askPrice sdk.Amount, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity <= 0 {
		return errs.Newf(errs.SymbolValidation, "listing quantity %d must be positive", quantity)
	}
	if askPrice <= 0 {
		return errs.Newf(errs.SymbolValidation, "asking price %d must be positive", int64(askPrice))
	}
	existing, err := m.loadListing(propertyID, seller)
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.Newf(errs.SymbolDuplicateListing,
			"%s already lists property %d", sdk.AddressToString(seller), propertyID)
	}
	if held := m.shares.BalanceOf(seller, propertyID); held < quantity {
		return errs.Newf(errs.SymbolInsufficientBalance,
			"%s holds %d shares of property %d, cannot list %d",
			sdk.AddressToString(seller), held, propertyID, quantity)
	}

	m.saveListing(&Listing{
		PropertyID: propertyID,
		Seller:     seller,
		Quantity:   quantity,
		AskPrice:   askPrice,
		State:      ListingActive,
	})
	m.emitListedEvent(propertyID, seller, quantity, askPrice)
	return nil
}

// Unlist withdraws a listing and clears every standing offer on it. A listing
// locked by an unexpired accepted offer cannot be withdrawn.
func (m *Market) Unlist(seller sdk.Address, propertyID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return err
	}
	if lst == nil {
		return errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	m.reviveIfExpired(lst, m.now())
	if lst.State == ListingPendingSale {
		return errs.New(errs.SymbolInvalidState, "the listing has an accepted buyer and is locked")
	}
	m.clearListing(propertyID, seller)
	m.emitUnlistedEvent(propertyID, seller)
	return nil
}

// SendOffer places or replaces the buyer's bid on a listing. Offers are
// closed while an unexpired accepted deal locks the listing.
func (m *Market) SendOffer(buyer sdk.Address, propertyID uint64, seller sdk.Address, price sdk.Amount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if price <= 0 {
		return errs.Newf(errs.SymbolValidation, "offer price %d must be positive", int64(price))
	}
	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return err
	}
	if lst == nil {
		return errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	now := m.now()
	revived := m.reviveIfExpired(lst, now)
	if lst.State == ListingPendingSale {
		return errs.New(errs.SymbolInvalidState, "the listing has an accepted buyer and is locked")
	}
	if revived {
		m.saveListing(lst)
		m.emitDealExpiredEvent(propertyID, seller)
	}
	m.saveOffer(propertyID, seller, &Offer{Buyer: buyer, Price: price, SentAt: now})
	m.rememberBuyer(propertyID, seller, buyer)
	m.emitOfferEvent(propertyID, seller, buyer, price)
	return nil
}

// RetractOffer withdraws the buyer's standing bid.
func (m *Market) RetractOffer(buyer sdk.Address, propertyID uint64, seller sdk.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, err := m.loadOffer(propertyID, seller, buyer)
	if err != nil {
		return err
	}
	if o == nil {
		return errs.New(errs.SymbolNotFound, "the offer does not exist")
	}
	m.deleteOffer(propertyID, seller, buyer)
	m.forgetBuyer(propertyID, seller, buyer)
	m.emitRetractEvent(propertyID, seller, buyer)
	return nil
}

// AcceptOffer locks the listing to one buyer at their offered price and
// starts the settlement window.
func (m *Market) AcceptOffer(seller sdk.Address, propertyID uint64, buyer sdk.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return err
	}
	if lst == nil {
		return errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	now := m.now()
	revived := m.reviveIfExpired(lst, now)
	if lst.State == ListingPendingSale {
		return errs.New(errs.SymbolInvalidState, "another accepted deal is still open")
	}
	o, err := m.loadOffer(propertyID, seller, buyer)
	if err != nil {
		return err
	}
	if o == nil {
		return errs.New(errs.SymbolNotFound, "the offer does not exist")
	}
	if revived {
		m.emitDealExpiredEvent(propertyID, seller)
	}
	lst.State = ListingPendingSale
	lst.AcceptedBuyer = buyer
	lst.AcceptedPrice = o.Price
	lst.DealDeadline = now + int64(m.window/time.Second)
	m.saveListing(lst)
	m.emitAcceptedEvent(propertyID, seller, buyer, o.Price, lst.DealDeadline)
	return nil
}

// SettleSale completes an accepted deal: the buyer pays exactly the accepted
// price, the seller receives the proceeds net of the marketplace fee and the
// shares change hands. The listing and all its offers are cleared.
func (m *Market) SettleSale(buyer sdk.Address, propertyID uint64, seller sdk.Address, payment sdk.Amount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return err
	}
	if lst == nil {
		return errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	if lst.State != ListingPendingSale {
		return errs.New(errs.SymbolInvalidState, "no accepted offer on this listing")
	}
	if lst.AcceptedBuyer != buyer {
		return errs.Newf(errs.SymbolNotAuthorized,
			"%s is not the accepted buyer", sdk.AddressToString(buyer))
	}
	if m.now() > lst.DealDeadline {
		return errs.New(errs.SymbolExpired, "the settlement window has passed")
	}
	if payment != lst.AcceptedPrice {
		return errs.Newf(errs.SymbolPaymentMismatch,
			"payment %d does not match accepted price %d", int64(payment), int64(lst.AcceptedPrice))
	}
	if held := m.shares.BalanceOf(seller, propertyID); held < lst.Quantity {
		return errs.Newf(errs.SymbolInsufficientBalance,
			"seller holds %d shares, deal needs %d", held, lst.Quantity)
	}
	if funds := m.bank.Balance(buyer, m.asset); funds < payment {
		return errs.Newf(errs.SymbolInsufficientBalance,
			"buyer funds %d cannot cover payment %d", int64(funds), int64(payment))
	}

	fee := m.fee
	if fee > payment {
		// the fee never exceeds what was actually paid
		fee = payment
	}
	// everything is validated; a failure past this point means a concurrent
	// writer violated the single-writer contract documented on New
	if err := m.shares.Transfer(seller, buyer, propertyID, lst.Quantity); err != nil {
		panic(err)
	}
	if err := m.bank.Draw(buyer, payment, m.asset); err != nil {
		panic(err)
	}
	if proceeds := payment - fee; proceeds > 0 {
		if err := m.bank.Transfer(seller, proceeds, m.asset); err != nil {
			panic(err)
		}
	}
	m.addFees(fee)
	m.clearListing(propertyID, seller)
	m.emitSettledEvent(propertyID, seller, buyer, lst.Quantity, payment, fee)
	return nil
}

// ListingPrice returns the asking price of a listing.
func (m *Market) ListingPrice(propertyID uint64, seller sdk.Address) (sdk.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return 0, err
	}
	if lst == nil {
		return 0, errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	return lst.AskPrice, nil
}

// OfferPrice returns the price of a buyer's standing offer.
func (m *Market) OfferPrice(propertyID uint64, seller, buyer sdk.Address) (sdk.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, err := m.loadOffer(propertyID, seller, buyer)
	if err != nil {
		return 0, err
	}
	if o == nil {
		return 0, errs.New(errs.SymbolNotFound, "the offer does not exist")
	}
	return o.Price, nil
}

// ViewListing returns a copy of the listing record, with expired pending
// deals already presented as active again.
func (m *Market) ViewListing(propertyID uint64, seller sdk.Address) (Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lst, err := m.loadListing(propertyID, seller)
	if err != nil {
		return Listing{}, err
	}
	if lst == nil {
		return Listing{}, errs.New(errs.SymbolNotFound, "the listing does not exist")
	}
	m.reviveIfExpired(lst, m.now())
	return *lst, nil
}

// FeesCollected reports the running total of retained marketplace fees.
func (m *Market) FeesCollected() sdk.Amount {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feesCollected()
}

func (m *Market) now() int64 {
	return m.clk.Now().Unix()
}
