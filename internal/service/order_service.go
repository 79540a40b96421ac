package service

import (
	"sort"
	"sync"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
)

// ordersSnapshot 单个客户的订单持久化快照
type ordersSnapshot struct {
	Version int            `json:"version"`
	Orders  []models.Order `json:"orders"`
}

// customerIndexSnapshot 客户索引快照（用于启动时恢复全量订单）
type customerIndexSnapshot struct {
	Version   int      `json:"version"`
	Customers []string `json:"customers"`
}

// OrderDraft 下单草稿：结算服务组装，订单服务冻结入库
type OrderDraft struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Items         []models.OrderItem
	Subtotal      models.Money
	Tax           models.Money
	ShippingCost  models.Money
	Total         models.Money
	Address       models.Address
	PaymentMethod string
	PaymentStatus string
	Status        string
}

// OrderService 订单仓库：进程内全局单例，订单数据归本服务独占所有，
// 所有读接口返回深拷贝，写入只经由 CreateOrder 与 UpdateStatus。
type OrderService struct {
	store kv.Store

	mu         sync.Mutex
	byID       map[string]*models.Order
	byCustomer map[string][]*models.Order
}

// NewOrderService 创建订单服务并从持久化恢复全部订单
func NewOrderService(store kv.Store) *OrderService {
	s := &OrderService{
		store:      store,
		byID:       make(map[string]*models.Order),
		byCustomer: make(map[string][]*models.Order),
	}
	s.restore()
	return s
}

func (s *OrderService) restore() {
	var index customerIndexSnapshot
	if !decodeSnapshot(constants.KeyOrderIndex, loadSnapshot(s.store, constants.KeyOrderIndex), &index, &index.Version) {
		return
	}
	for _, customerID := range index.Customers {
		key := constants.KeyPrefixOrders + customerID
		var snapshot ordersSnapshot
		if !decodeSnapshot(key, loadSnapshot(s.store, key), &snapshot, &snapshot.Version) {
			continue
		}
		for i := range snapshot.Orders {
			order := snapshot.Orders[i]
			if _, exists := s.byID[order.ID]; exists {
				logger.Warnw("order_restore_duplicate_id", "order_id", order.ID, "customer_id", customerID)
				continue
			}
			stored := order
			s.byID[stored.ID] = &stored
			s.byCustomer[customerID] = append(s.byCustomer[customerID], &stored)
		}
	}
	logger.Infow("orders_restored", "customers", len(s.byCustomer), "orders", len(s.byID))
}

// CreateOrder 冻结草稿并入库；订单号系统生成，冲突时重试一次
func (s *OrderService) CreateOrder(draft OrderDraft) (*models.Order, error) {
	if draft.CustomerID == "" || len(draft.Items) == 0 {
		return nil, ErrInvalidOrderDraft
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateOrderID()
	if _, exists := s.byID[id]; exists {
		id = generateOrderID()
		if _, exists := s.byID[id]; exists {
			return nil, ErrDuplicateOrderID
		}
	}

	now := time.Now()
	order := &models.Order{
		ID:            id,
		CustomerID:    draft.CustomerID,
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		Items:         cloneOrderItems(draft.Items),
		Subtotal:      draft.Subtotal,
		Tax:           draft.Tax,
		ShippingCost:  draft.ShippingCost,
		Total:         draft.Total,
		Address:       draft.Address,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: draft.PaymentStatus,
		Status:        draft.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.Status == "" {
		order.Status = constants.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = constants.PaymentStatusPending
	}

	s.byID[order.ID] = order
	s.byCustomer[order.CustomerID] = append(s.byCustomer[order.CustomerID], order)
	s.persistCustomerLocked(order.CustomerID)
	s.persistIndexLocked()

	return cloneOrder(order), nil
}

// GetOrderByID 按订单号查询
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// UpdateStatus 推进订单状态；相同状态为幂等空操作
func (s *OrderService) UpdateStatus(id, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.Status == status {
		return cloneOrder(order), nil
	}
	if !isValidOrderStatus(status) || !isTransitionAllowed(order.Status, status) {
		return nil, ErrInvalidTransition
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	s.persistCustomerLocked(order.CustomerID)
	logger.Infow("order_status_updated", "order_id", order.ID, "status", status)
	return cloneOrder(order), nil
}

// ListOrdersByCustomer 查询客户订单（按创建时间倒序）
func (s *OrderService) ListOrdersByCustomer(customerID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortOrdersDesc(s.byCustomer[customerID])
}

// ListAllOrders 查询全部订单（管理端，按创建时间倒序）
func (s *OrderService) ListAllOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*models.Order, 0, len(s.byID))
	for _, order := range s.byID {
		all = append(all, order)
	}
	return sortOrdersDesc(all)
}

func (s *OrderService) persistCustomerLocked(customerID string) {
	orders := s.byCustomer[customerID]
	snapshot := ordersSnapshot{
		Version: snapshotVersion,
		Orders:  make([]models.Order, 0, len(orders)),
	}
	for _, order := range orders {
		snapshot.Orders = append(snapshot.Orders, *cloneOrder(order))
	}
	saveSnapshot(s.store, constants.KeyPrefixOrders+customerID, snapshot)
}

func (s *OrderService) persistIndexLocked() {
	customers := make([]string, 0, len(s.byCustomer))
	for customerID := range s.byCustomer {
		customers = append(customers, customerID)
	}
	sort.Strings(customers)
	saveSnapshot(s.store, constants.KeyOrderIndex, customerIndexSnapshot{
		Version:   snapshotVersion,
		Customers: customers,
	})
}

func sortOrdersDesc(orders []*models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, *cloneOrder(order))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneOrder(order *models.Order) *models.Order {
	copied := *order
	copied.Items = cloneOrderItems(order.Items)
	return &copied
}

func cloneOrderItems(items []models.OrderItem) []models.OrderItem {
	copied := make([]models.OrderItem, len(items))
	copy(copied, items)
	return copied
}
