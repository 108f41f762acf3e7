package store_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/models"
	"github.com/dertamme/milestone3/internal/notifier"
	"github.com/dertamme/milestone3/internal/store"
)

type recordingNotifier struct {
	confirmations int
}

func (r *recordingNotifier) SendOrderConfirmation(context.Context, notifier.OrderConfirmation) error {
	r.confirmations++
	return nil
}

func (r *recordingNotifier) SendShippingNotification(context.Context, notifier.ShippingNotification) error {
	return nil
}

func setupStoreTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *recordingNotifier) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(
		&models.Category{}, &models.Supplier{}, &models.Product{},
		&models.Inventory{}, &models.Customer{}, &models.Order{}, &models.OrderItem{},
	)
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	fake := &recordingNotifier{}
	previous := notifier.Use(fake)

	r := gin.New()
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("storesess", sessionStore))

	r.LoadHTMLGlob("../../templates/*.html")

	r.GET("/store", store.Index)
	r.GET("/product/:name", store.ProductPage)
	r.GET("/cart", store.CartPage)
	r.GET("/checkout", store.CheckoutPage)
	r.POST("/submit_checkout", store.SubmitCheckout)
	r.GET("/thank_you", store.ThankYou)
	r.GET("/add_to_cart/:id", store.AddToCart)
	r.GET("/remove_from_cart/:id", store.RemoveFromCart)
	r.GET("/increase_quantity/:id", store.IncreaseQuantity)
	r.GET("/decrease_quantity/:id", store.DecreaseQuantity)

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
		notifier.Use(previous)
	})

	return r, testDB, fake
}

// browser replays session cookies across requests, like a visitor's user
// agent would.
type browser struct {
	router  *gin.Engine
	cookies map[string]string
}

func newBrowser(router *gin.Engine) *browser {
	return &browser{router: router, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	var pairs []string
	for name, value := range b.cookies {
		pairs = append(pairs, name+"="+value)
	}
	if len(pairs) > 0 {
		req.Header.Set("Cookie", strings.Join(pairs, "; "))
	}

	recorder := httptest.NewRecorder()
	b.router.ServeHTTP(recorder, req)

	for _, ck := range recorder.Result().Cookies() {
		b.cookies[ck.Name] = ck.Value
	}
	return recorder
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func seedStoreProduct(testDB *gorm.DB, name string, price float64, stock int) models.Product {
	category := models.Category{Name: name + " category"}
	testDB.Create(&category)
	supplier := models.Supplier{Name: name + " supplier", Email: name + "@suppliers.test"}
	testDB.Create(&supplier)
	product := models.Product{Name: name, Description: name, Price: price, CategoryID: category.ID}
	testDB.Create(&product)
	inv := models.Inventory{ProductID: product.ID, StockLevel: stock, ReorderLevel: 1, SupplierID: supplier.ID}
	testDB.Create(&inv)
	return product
}

func TestStorePages(t *testing.T) {
	router, testDB, _ := setupStoreTestRouter(t)
	seedStoreProduct(testDB, "Oak Table", 299.99, 10)

	b := newBrowser(router)

	t.Run("Store page lists the catalog", func(t *testing.T) {
		recorder := b.get("/store")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Oak Table")
		assert.Contains(t, recorder.Body.String(), "Cart (0)")
	})

	t.Run("Product page is found case-insensitively", func(t *testing.T) {
		recorder := b.get("/product/oak%20table")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Oak Table")
	})

	t.Run("Unknown product redirects to the store", func(t *testing.T) {
		recorder := b.get("/product/nosuchthing")
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/store", recorder.Header().Get("Location"))
	})
}

func TestCartFlow(t *testing.T) {
	router, testDB, _ := setupStoreTestRouter(t)
	product := seedStoreProduct(testDB, "Floor Lamp", 89.99, 10)

	b := newBrowser(router)
	addPath := fmt.Sprintf("/add_to_cart/%d", product.ID)

	t.Run("Adding to the cart bumps the badge", func(t *testing.T) {
		recorder := b.get(addPath)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/store", recorder.Header().Get("Location"))

		recorder = b.get("/cart")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Cart (1)")
		assert.Contains(t, recorder.Body.String(), "Floor Lamp x 1")
	})

	t.Run("Adding the same product again increments its quantity", func(t *testing.T) {
		b.get(addPath)

		recorder := b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (2)")
		assert.Contains(t, recorder.Body.String(), "Floor Lamp x 2")
	})

	t.Run("Increase then decrease round-trips", func(t *testing.T) {
		b.get(fmt.Sprintf("/increase_quantity/%d", product.ID))
		b.get(fmt.Sprintf("/decrease_quantity/%d", product.ID))

		recorder := b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (2)")
	})

	t.Run("Decrease on a quantity-1 entry removes it", func(t *testing.T) {
		b.get(fmt.Sprintf("/decrease_quantity/%d", product.ID))
		b.get(fmt.Sprintf("/decrease_quantity/%d", product.ID))

		recorder := b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (0)")
		assert.NotContains(t, recorder.Body.String(), "Floor Lamp x")
	})

	t.Run("Remove drops the entry entirely", func(t *testing.T) {
		b.get(addPath)
		b.get(fmt.Sprintf("/remove_from_cart/%d", product.ID))

		recorder := b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (0)")
	})
}

func TestSubmitCheckout(t *testing.T) {
	router, testDB, fake := setupStoreTestRouter(t)
	product := seedStoreProduct(testDB, "Side Table", 12.50, 10)

	form := url.Values{}
	form.Set("name", "Ada Lovelace")
	form.Set("email", "ada@example.com")

	t.Run("Checkout places the order and destroys the cart", func(t *testing.T) {
		b := newBrowser(router)
		b.get(fmt.Sprintf("/add_to_cart/%d", product.ID))
		b.get(fmt.Sprintf("/increase_quantity/%d", product.ID))

		recorder := b.postForm("/submit_checkout", form)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/thank_you", recorder.Header().Get("Location"))

		var order models.Order
		assert.NoError(t, testDB.Preload("Items").Order("order_id DESC").First(&order).Error)
		assert.Equal(t, 25.00, order.TotalAmount)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)

		var customer models.Customer
		assert.NoError(t, testDB.Where("email = ?", "ada@example.com").First(&customer).Error)
		assert.Equal(t, customer.ID, order.CustomerID)

		var inv models.Inventory
		testDB.Where("product_id = ?", product.ID).First(&inv)
		assert.Equal(t, 8, inv.StockLevel)

		assert.Equal(t, 1, fake.confirmations)

		recorder = b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (0)")
	})

	t.Run("An empty cart bounces back to the cart page", func(t *testing.T) {
		b := newBrowser(router)
		recorder := b.postForm("/submit_checkout", form)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/cart", recorder.Header().Get("Location"))
	})

	t.Run("Insufficient stock keeps the cart and places nothing", func(t *testing.T) {
		scarce := seedStoreProduct(testDB, "Rare Vase", 5.00, 1)

		b := newBrowser(router)
		b.get(fmt.Sprintf("/add_to_cart/%d", scarce.ID))
		b.get(fmt.Sprintf("/increase_quantity/%d", scarce.ID))

		var ordersBefore int64
		testDB.Model(&models.Order{}).Count(&ordersBefore)

		recorder := b.postForm("/submit_checkout", form)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/cart", recorder.Header().Get("Location"))

		var ordersAfter int64
		testDB.Model(&models.Order{}).Count(&ordersAfter)
		assert.Equal(t, ordersBefore, ordersAfter)

		recorder = b.get("/cart")
		assert.Contains(t, recorder.Body.String(), "Cart (2)")
	})
}
