package models

// Order — запись заказа из табличного стора. Трекинговых номера два:
// CarrierTrackingNumber идёт в 17Track, MarketplaceTrackingNumber видит покупатель.
type Order struct {
	OrderID             string   `json:"orderId"`
	PlatformOrderNumber string   `json:"platformOrderNumber"`
	ItemName            string   `json:"itemName"`
	SKU                 string   `json:"sku"`
	Quantity            int      `json:"quantity"`
	SalesAmount         float64  `json:"salesAmount"`
	OrderDate           string   `json:"orderDate"`
	RecipientName       string   `json:"recipientName"`
	RecipientAddress    string   `json:"recipientAddress"`
	RecipientPhone      *string  `json:"recipientPhone,omitempty"`
	Status              string   `json:"status"`
	StoreCode           *string  `json:"storeCode,omitempty"`

	ShipDate       *string `json:"shipDate,omitempty"`
	LatestShipDate *string `json:"latestShipDate,omitempty"`

	CarrierTrackingNumber     *string `json:"carrierTrackingNumber,omitempty"`
	MarketplaceTrackingNumber *string `json:"marketplaceTrackingNumber,omitempty"`
	TrackingCarrier           *string `json:"trackingCarrier,omitempty"`
	TrackingStatus            *string `json:"trackingStatus,omitempty"`
	TrackingDetailStatus      *string `json:"trackingDetailStatus,omitempty"`
	TrackingLastUpdate        *string `json:"trackingLastUpdate,omitempty"`
	ExpectedDelivery          *string `json:"expectedDelivery,omitempty"`
	ActualDelivery            *string `json:"actualDelivery,omitempty"`
	DaysSinceLastUpdate       *int    `json:"daysSinceLastUpdate,omitempty"`

	PlatformOrderStatus      *string `json:"platformOrderStatus,omitempty"`
	FulfillmentStatus        *string `json:"fulfillmentStatus,omitempty"`
	ShipperFulfillmentStatus *string `json:"shipperFulfillmentStatus,omitempty"`
	SupplierOrderNumber      *string `json:"supplierOrderNumber,omitempty"`
	ShipmentDropped          bool    `json:"shipmentDropped"`

	RecordID         string  `json:"recordId"`
	ProductID        *string `json:"productId,omitempty"`
	SupplierLink     *string `json:"supplierLink,omitempty"`
}

type Store struct {
	ID                string  `json:"id"`
	StoreCode         string  `json:"storeCode"`
	StoreName         string  `json:"storeName"`
	Platform          string  `json:"platform"`
	PersonaName       *string `json:"personaName,omitempty"`
	PersonaAge        *int    `json:"personaAge,omitempty"`
	PersonaLocation   *string `json:"personaLocation,omitempty"`
	PersonaBackground *string `json:"personaBackground,omitempty"`
	PersonalityTraits *string `json:"personalityTraits,omitempty"`
	WritingStyle      *string `json:"writingStyle,omitempty"`
	GreetingTemplate  *string `json:"greetingTemplate,omitempty"`
	SignoffTemplate   *string `json:"signoffTemplate,omitempty"`
	CSEmail           *string `json:"csEmail,omitempty"`
	MaxResponseHours  *int    `json:"maxResponseHours,omitempty"`
}

type Playbook struct {
	ID                      string   `json:"id"`
	ScenarioName            string   `json:"scenarioName"`
	IssueCategory           string   `json:"issueCategory"`
	Description             *string  `json:"description,omitempty"`
	DecisionTree            *string  `json:"decisionTree,omitempty"`
	ResponseTemplate        *string  `json:"responseTemplate,omitempty"`
	WhenToEscalate          *string  `json:"whenToEscalate,omitempty"`
	AutoRefundThreshold     *float64 `json:"autoRefundThreshold,omitempty"`
	ReturnRequiredThreshold *float64 `json:"returnRequiredThreshold,omitempty"`
	Status                  string   `json:"status"`
	Notes                   *string  `json:"notes,omitempty"`
}
