package mapping

// quantityRange is the range the quantity-like numeric columns can hold.
// Values outside it are rejected with a validation error rather than
// truncated.
var quantityRange = &IntRange{Min: 0, Max: 99}

// UnassignedRef is the sentinel identifier substituted for a missing
// relational reference so imperfect exports still import.
const UnassignedRef = int64(0)

// tables enumerates the per-entity-type field mappings. Aliases cover our
// own export labels plus the spellings used by the competing product's
// spreadsheets.
var tables = map[string]Table{
	"orders": {
		Entity:   "orders",
		SQLTable: "orders",
		Fields: []Field{
			{Key: "order_number", Kind: KindString, Required: true,
				Aliases: []string{"order_number", "orderNumber", "Order Number", "order_no", "OrderID", "quote_number"}},
			{Key: "category", Kind: KindString, Required: true,
				Aliases: []string{"category", "order_category", "Event Type", "type"}},
			{Key: "total_amount", Kind: KindMoney, Required: true,
				Aliases: []string{"total_amount", "totalAmount", "Order Total", "total", "amount", "price"}},
			{Key: "event_date", Kind: KindDate, Required: true,
				Aliases: []string{"event_date", "eventDate", "Event Date", "date", "due_date", "delivery_date"}},
			{Key: "contact_id", Kind: KindReference, Default: UnassignedRef,
				Aliases: []string{"contact_id", "contactId", "customer_id", "Customer", "client"}},
			{Key: "delivery_fee", Kind: KindMoney, Default: "0",
				Aliases: []string{"delivery_fee", "deliveryFee", "Delivery Charge", "shipping"}},
			{Key: "discount", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"discount", "discount_percent", "Discount %"}},
			{Key: "profit_margin", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"profit_margin", "profitMargin", "profit", "markup"}},
			{Key: "status", Kind: KindString, Default: "pending",
				Aliases: []string{"status", "order_status", "Order Status"}},
			{Key: "paid", Kind: KindBoolean, Default: false,
				Aliases: []string{"paid", "is_paid", "Paid in Full", "payment_received"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "description", "Order Notes", "comments"}},
		},
	},
	"order_items": {
		Entity:   "order_items",
		SQLTable: "order_items",
		Fields: []Field{
			{Key: "order_number", Kind: KindString, Required: true,
				Aliases: []string{"order_number", "orderNumber", "Order Number", "order_no"}},
			{Key: "item_name", Kind: KindString, Required: true,
				Aliases: []string{"item_name", "itemName", "Item", "name", "product"}},
			{Key: "quantity", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"quantity", "qty", "Qty", "count"}},
			{Key: "unit_price", Kind: KindMoney, Default: "0",
				Aliases: []string{"unit_price", "unitPrice", "Price Each", "price", "cost"}},
			{Key: "servings", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"servings", "Serves", "portion_count"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "description", "details"}},
		},
	},
	"expenses": {
		Entity:   "expenses",
		SQLTable: "expenses",
		Fields: []Field{
			{Key: "category", Kind: KindString, Required: true,
				Aliases: []string{"category", "expense_category", "Expense Type", "type"}},
			{Key: "amount", Kind: KindMoney, Required: true,
				Aliases: []string{"amount", "total", "Amount Spent", "cost", "price"}},
			{Key: "incurred_on", Kind: KindDate, Required: true,
				Aliases: []string{"incurred_on", "date", "Expense Date", "purchase_date", "paid_on"}},
			{Key: "vendor", Kind: KindString,
				Aliases: []string{"vendor", "supplier", "Paid To", "merchant", "store"}},
			{Key: "tax_deductible", Kind: KindBoolean, Default: false,
				Aliases: []string{"tax_deductible", "deductible", "Tax Deductible"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "description", "memo"}},
		},
	},
	"supplies": {
		Entity:   "supplies",
		SQLTable: "supplies",
		Fields: []Field{
			{Key: "name", Kind: KindString, Required: true,
				Aliases: []string{"name", "supply_name", "Item", "item_name", "product"}},
			{Key: "category", Kind: KindString, Default: "general",
				Aliases: []string{"category", "supply_category", "type"}},
			{Key: "unit_cost", Kind: KindMoney, Default: "0",
				Aliases: []string{"unit_cost", "unitCost", "Cost Each", "cost", "price"}},
			{Key: "quantity_on_hand", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"quantity_on_hand", "quantity", "qty", "Stock", "on_hand"}},
			{Key: "unit", Kind: KindString, Default: "each",
				Aliases: []string{"unit", "Unit of Measure", "uom", "measure"}},
			{Key: "restock_date", Kind: KindDate, FallbackNow: true,
				Aliases: []string{"restock_date", "last_purchased", "Purchased On"}},
		},
	},
	"contacts": {
		Entity:   "contacts",
		SQLTable: "contacts",
		Fields: []Field{
			{Key: "name", Kind: KindString, Required: true,
				Aliases: []string{"name", "contact_name", "Customer Name", "full_name", "client"}},
			{Key: "email", Kind: KindString,
				Aliases: []string{"email", "email_address", "Email Address", "e-mail"}},
			{Key: "phone", Kind: KindString,
				Aliases: []string{"phone", "phone_number", "Phone Number", "mobile", "cell"}},
			{Key: "address", Kind: KindString,
				Aliases: []string{"address", "street_address", "Mailing Address"}},
			{Key: "subscribed", Kind: KindBoolean, Default: false,
				Aliases: []string{"subscribed", "newsletter", "Mailing List"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "comments", "details"}},
		},
	},
	"recipes": {
		Entity:   "recipes",
		SQLTable: "recipes",
		Fields: []Field{
			{Key: "name", Kind: KindString, Required: true,
				Aliases: []string{"name", "recipe_name", "Recipe", "title"}},
			{Key: "category", Kind: KindString, Default: "general",
				Aliases: []string{"category", "recipe_category", "type"}},
			{Key: "servings", Kind: KindInteger, Default: int64(0), Bounds: quantityRange,
				Aliases: []string{"servings", "Serves", "yield", "portions"}},
			{Key: "batch_cost", Kind: KindMoney, Default: "0",
				Aliases: []string{"batch_cost", "cost", "Cost to Make", "total_cost"}},
			{Key: "instructions", Kind: KindString,
				Aliases: []string{"instructions", "method", "directions", "steps"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "description"}},
		},
	},
	"quotes": {
		Entity:   "quotes",
		SQLTable: "quotes",
		Fields: []Field{
			{Key: "quote_number", Kind: KindString, Required: true,
				Aliases: []string{"quote_number", "quoteNumber", "Quote Number", "quote_no", "reference"}},
			{Key: "contact_id", Kind: KindReference, Default: UnassignedRef,
				Aliases: []string{"contact_id", "contactId", "customer_id", "Customer", "client"}},
			{Key: "total_amount", Kind: KindMoney, Required: true,
				Aliases: []string{"total_amount", "totalAmount", "Quote Total", "total", "amount"}},
			{Key: "event_date", Kind: KindDate, Required: true,
				Aliases: []string{"event_date", "eventDate", "Event Date", "date", "needed_by"}},
			{Key: "accepted", Kind: KindBoolean, Default: false,
				Aliases: []string{"accepted", "approved", "Quote Accepted"}},
			{Key: "expires_on", Kind: KindDate,
				Aliases: []string{"expires_on", "expiry", "Valid Until", "expiration_date"}},
			{Key: "notes", Kind: KindString,
				Aliases: []string{"notes", "description", "details"}},
		},
	},
}
