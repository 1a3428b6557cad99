package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB opens gorm over a sqlmock connection with the same dialect
// settings production uses.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

func TestSavePurchaseOrder_RecomputesTotalAfterItemChanges(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseOrderRepo(db)

	po := &models.PurchaseOrder{
		ID: 7, HospitalID: 5, PONumber: "PO-1003",
		Status: models.POStatusDraft, OrderDate: time.Now(),
	}
	// Item 1 is updated, the second line is new, and stored item 2 is
	// absent from the set so it must be deleted.
	items := []models.PurchaseOrderItem{
		{ID: 1, InventoryItemID: 3, Quantity: 4, UnitPrice: 2.5},
		{InventoryItemID: 9, Quantity: 2, UnitPrice: 10},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `purchase_orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `purchase_order_items` WHERE purchase_order_id = ?")).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "purchase_order_id", "inventory_item_id", "quantity", "unit_price", "received_quantity"}).
			AddRow(1, 7, 3, 4, 2.5, 0).
			AddRow(2, 7, 8, 1, 5.0, 0))
	mock.ExpectExec("UPDATE `purchase_order_items` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `purchase_order_items`").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("DELETE FROM `purchase_order_items`").
		WithArgs(uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(quantity * unit_price), 0) FROM `purchase_order_items` WHERE purchase_order_id = ?")).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(30.0))
	mock.ExpectExec("UPDATE `purchase_orders` SET `total_cost`").
		WithArgs(30.0, sqlmock.AnyArg(), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SavePurchaseOrder(po, items))
	assert.Equal(t, 30.0, po.TotalCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePurchaseOrder_NilItemsSkipsReconciliation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseOrderRepo(db)

	po := &models.PurchaseOrder{
		ID: 7, HospitalID: 5, PONumber: "PO-1003",
		Status: models.POStatusSubmitted, OrderDate: time.Now(),
	}

	// A field-only save still re-verifies total_cost but must not touch
	// the item rows.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `purchase_orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(quantity * unit_price), 0) FROM `purchase_order_items` WHERE purchase_order_id = ?")).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(10.0))
	mock.ExpectExec("UPDATE `purchase_orders` SET `total_cost`").
		WithArgs(10.0, sqlmock.AnyArg(), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SavePurchaseOrder(po, nil))
	assert.Equal(t, 10.0, po.TotalCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceivePurchaseOrder_AppliesStockAndSupplier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseOrderRepo(db)

	supplierID := uint(3)
	po := &models.PurchaseOrder{
		ID: 7, HospitalID: 5, SupplierID: &supplierID,
		Status: models.POStatusSubmitted,
		Items: []models.PurchaseOrderItem{
			{ID: 1, PurchaseOrderID: 7, InventoryItemID: 30, Quantity: 5, ReceivedQuantity: 5},
			{ID: 2, PurchaseOrderID: 7, InventoryItemID: 31, Quantity: 2, ReceivedQuantity: 2},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `purchase_orders` SET `status`").
		WithArgs(models.POStatusReceived, sqlmock.AnyArg(), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_items` SET `quantity`=quantity + ?")).
		WithArgs(5, supplierID, sqlmock.AnyArg(), uint(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_items` SET `quantity`=quantity + ?")).
		WithArgs(2, supplierID, sqlmock.AnyArg(), uint(31)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReceivePurchaseOrder(po))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceivePurchaseOrder_StockFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseOrderRepo(db)

	supplierID := uint(3)
	po := &models.PurchaseOrder{
		ID: 7, HospitalID: 5, SupplierID: &supplierID,
		Status: models.POStatusSubmitted,
		Items: []models.PurchaseOrderItem{
			{ID: 1, PurchaseOrderID: 7, InventoryItemID: 30, Quantity: 5, ReceivedQuantity: 5},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `purchase_orders` SET `status`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_items` SET `quantity`=quantity + ?")).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()

	assert.Error(t, repo.ReceivePurchaseOrder(po))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchaseOrder_DuplicateNumberIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseOrderRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `purchase_orders`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.CreatePurchaseOrder(&models.PurchaseOrder{
		HospitalID: 5, PONumber: "PO-1001",
		Status: models.POStatusDraft, OrderDate: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
