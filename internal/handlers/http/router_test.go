package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/unusualpills/internal/domain/ports"
	"github.com/rafabene/unusualpills/internal/domain/repositories"
	httphandlers "github.com/rafabene/unusualpills/internal/handlers/http"
	"github.com/rafabene/unusualpills/internal/infrastructure/config"
	"github.com/rafabene/unusualpills/internal/infrastructure/i18n"
	"github.com/rafabene/unusualpills/internal/infrastructure/logging"
	"github.com/rafabene/unusualpills/internal/infrastructure/metrics"
	"github.com/rafabene/unusualpills/internal/infrastructure/persistence/database"
	"github.com/rafabene/unusualpills/internal/services"
	"github.com/rafabene/unusualpills/web"
)

const problemJSON = "application/problem+json"

type stubGateway struct {
	coupons  []ports.CouponRequest
	sessions []ports.SessionRequest
	err      error
}

func (g *stubGateway) CreateCoupon(_ context.Context, req ports.CouponRequest) (string, error) {
	g.coupons = append(g.coupons, req)
	return "coupon_b2g2", g.err
}

func (g *stubGateway) CreateSession(_ context.Context, req ports.SessionRequest) (string, error) {
	g.sessions = append(g.sessions, req)
	if g.err != nil {
		return "", g.err
	}
	return "https://checkout.stripe.com/c/pay/cs_test_abc", nil
}

type testApp struct {
	router  *gin.Engine
	repo    repositories.SignupRepository
	gateway *stubGateway
}

func newTestApp(gateway ports.PaymentGateway, stub *stubGateway) *testApp {
	dir, err := os.MkdirTemp("", "unusualpills-http-*")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(os.RemoveAll, dir)

	dbCfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(dir, "site.db"),
	}
	logger := logging.NewNopLogger()

	db, err := database.NewDatabaseConnection(dbCfg, "error", logger)
	Expect(err).NotTo(HaveOccurred())
	Expect(database.Migrate(db)).To(Succeed())
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(sqlDB.Close)

	i18nService, err := i18n.NewEmbeddedService("en")
	Expect(err).NotTo(HaveOccurred())
	templates, err := web.Templates()
	Expect(err).NotTo(HaveOccurred())
	static, err := web.Static()
	Expect(err).NotTo(HaveOccurred())

	promMetrics := metrics.New()
	repo := database.NewSignupRepository(db)

	signupService := services.NewSignupService(repo, database.NewUnitOfWork(db), promMetrics, logger, services.SignupOptions{})
	checkoutService := services.NewCheckoutService(gateway, promMetrics, logger, services.CheckoutOptions{
		SiteURL: "https://unusualpills.test",
	})

	cfg := &config.Config{
		Env:    "test",
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		CORS:   config.CORSConfig{AllowedOrigins: "*"},
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		I18n:            i18nService,
		Templates:       templates,
		Static:          static,
		SignupService:   signupService,
		CheckoutService: checkoutService,
		Metrics:         promMetrics.Handler(),
		HealthCheck:     sqlDB.PingContext,
	})

	return &testApp{router: router, repo: repo, gateway: stub}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(values url.Values, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/free-shirt", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return a.do(req)
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func janeForm() url.Values {
	return url.Values{
		"marketing_consent": {"on"},
		"email":             {"jane@x.com"},
		"first_name":        {"Jane"},
		"last_name":         {"Doe"},
		"address1":          {"1 Main St"},
		"city":              {"Springfield"},
		"state":             {"IL"},
		"postal_code":       {"62701"},
	}
}

func decodeProblem(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	ExpectWithOffset(1, json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
	return body
}

var _ = Describe("Router", func() {
	var app *testApp

	BeforeEach(func() {
		stub := &stubGateway{}
		app = newTestApp(stub, stub)
	})

	Describe("páginas", func() {
		DescribeTable("renderiza o template",
			func(path, title string) {
				w := app.get(path)
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(w.Header().Get("Content-Type")).To(HavePrefix("text/html"))
				Expect(w.Body.String()).To(ContainSubstring("<title>" + title + "</title>"))
			},
			Entry("home", "/", "Unusual Pills"),
			Entry("claw", "/claw", "The Claw"),
			Entry("merch", "/merch", "Merch"),
			Entry("thanks", "/thanks", "Thank you!"),
			Entry("free shirt", "/free-shirt", "Get a free shirt"),
		)

		It("traduz conforme ?lang", func() {
			w := app.get("/merch?lang=es")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("<title>Tienda</title>"))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("lang=es"))
		})

		It("serve o css embutido", func() {
			w := app.get("/static/site.css")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(".notices"))
		})
	})

	Describe("formulário da camiseta", func() {
		It("cria o cadastro e redireciona para /thanks", func() {
			w := app.postForm(janeForm(), map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/thanks"))

			signup, err := app.repo.FindByEmail(context.Background(), "jane@x.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(signup).NotTo(BeNil())
			Expect(signup.Country).To(Equal("USA"))
			Expect(signup.Address2).To(BeEmpty())
			Expect(signup.Phone).To(BeEmpty())
			Expect(signup.MarketingConsent).To(BeTrue())
			Expect(signup.ConsentIP).To(Equal("203.0.113.7"))
			Expect(signup.ConsentTimestamp).To(MatchRegexp(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`))
			Expect(signup.CreatedAt).To(Equal(signup.ConsentTimestamp))
		})

		It("exige o consentimento sem gravar nada", func() {
			form := janeForm()
			form.Del("marketing_consent")

			w := app.postForm(form, nil)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/free-shirt?notice=consent_required"))
			count, err := app.repo.Count(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("exige os campos obrigatórios", func() {
			form := janeForm()
			form.Set("city", "   ")

			w := app.postForm(form, nil)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/free-shirt?notice=missing_fields"))
		})

		It("atualiza o cadastro existente preservando created_at", func() {
			Expect(app.postForm(janeForm(), nil).Code).To(Equal(http.StatusFound))
			first, err := app.repo.FindByEmail(context.Background(), "jane@x.com")
			Expect(err).NotTo(HaveOccurred())

			form := janeForm()
			form.Set("city", "Chicago")
			Expect(app.postForm(form, nil).Code).To(Equal(http.StatusFound))

			second, err := app.repo.FindByEmail(context.Background(), "jane@x.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(second.City).To(Equal("Chicago"))
			Expect(second.CreatedAt).To(Equal(first.CreatedAt))

			count, err := app.repo.Count(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeEquivalentTo(1))
		})

		It("normaliza o email antes do upsert", func() {
			Expect(app.postForm(janeForm(), nil).Code).To(Equal(http.StatusFound))

			form := janeForm()
			form.Set("email", "  JANE@X.COM ")
			Expect(app.postForm(form, nil).Code).To(Equal(http.StatusFound))

			count, err := app.repo.Count(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeEquivalentTo(1))
		})

		It("mostra o aviso traduzido após o redirect", func() {
			w := app.get("/free-shirt?notice=consent_required")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Please check the marketing consent box"))
		})

		It("traduz os rótulos do formulário", func() {
			en := app.get("/free-shirt").Body.String()
			Expect(en).To(ContainSubstring("I agree to receive marketing emails from Unusual Pills"))
			Expect(en).To(ContainSubstring(`<button type="submit">Send me a shirt</button>`))

			es := app.get("/free-shirt?lang=es").Body.String()
			Expect(es).To(ContainSubstring("Acepto recibir correos de marketing de Unusual Pills"))
			Expect(es).To(ContainSubstring(`<button type="submit">Envíame una camiseta</button>`))
			Expect(es).To(ContainSubstring("Código postal"))
		})

		It("ignora avisos desconhecidos", func() {
			w := app.get("/free-shirt?notice=%3Cscript%3E")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).NotTo(ContainSubstring(`class="notice"`))
		})
	})

	Describe("checkout", func() {
		It("cria a sessão com cupom quando há desconto", func() {
			body := `{"items":[{"name":"Tee","price_cents":2500,"quantity":4,"is_shirt":true,"currency":"USD"}]}`

			w := app.postJSON("/api/checkout", body)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["url"]).To(Equal("https://checkout.stripe.com/c/pay/cs_test_abc"))

			Expect(app.gateway.coupons).To(HaveLen(1))
			Expect(app.gateway.coupons[0].AmountOff).To(BeEquivalentTo(5000))
			Expect(app.gateway.sessions).To(HaveLen(1))
			Expect(app.gateway.sessions[0].Currency).To(Equal("usd"))
			Expect(app.gateway.sessions[0].CouponID).To(Equal("coupon_b2g2"))
			Expect(app.gateway.sessions[0].SuccessURL).To(Equal("https://unusualpills.test/thanks?session_id={CHECKOUT_SESSION_ID}"))
		})

		It("rejeita carrinho vazio com problem+json", func() {
			w := app.postJSON("/api/checkout", `{"items":[]}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix(problemJSON))
			Expect(decodeProblem(w)["detail"]).To(Equal("No items provided"))
		})

		It("rejeita item com preço inválido", func() {
			w := app.postJSON("/api/checkout", `{"items":[{"name":"Tee","price_cents":-1}]}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeProblem(w)["detail"]).To(ContainSubstring(`"Tee"`))
		})

		It("rejeita quantidades e preços fora do limite sem chamar o provedor", func() {
			for _, body := range []string{
				`{"items":[{"name":"Tee","price_cents":1,"quantity":1e10,"is_shirt":true}]}`,
				`{"items":[{"name":"Tee","price_cents":1e19}]}`,
			} {
				w := app.postJSON("/api/checkout", body)

				Expect(w.Code).To(Equal(http.StatusBadRequest), body)
				Expect(w.Header().Get("Content-Type")).To(HavePrefix(problemJSON))
			}
			Expect(app.gateway.coupons).To(BeEmpty())
			Expect(app.gateway.sessions).To(BeEmpty())
		})

		It("rejeita JSON malformado", func() {
			w := app.postJSON("/api/checkout", `{"items":`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("devolve 502 quando o provedor falha", func() {
			app.gateway.err = errors.New("card_declined")

			w := app.postJSON("/api/checkout", `{"items":[{"name":"Hat","price_cents":1500}]}`)

			Expect(w.Code).To(Equal(http.StatusBadGateway))
		})

		It("devolve 405 para métodos diferentes de POST", func() {
			w := app.get("/api/checkout")

			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix(problemJSON))
		})

		It("responde ao preflight de CORS", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/checkout", nil)
			req.Header.Set("Origin", "https://shop.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			w := app.do(req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	Describe("sem chave de pagamento", func() {
		It("devolve 503", func() {
			disabled := newTestApp(nil, nil)

			w := disabled.postJSON("/api/checkout", `{"items":[{"name":"Hat","price_cents":1500}]}`)

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix(problemJSON))
		})
	})

	Describe("operacional", func() {
		It("responde o health check", func() {
			w := app.get("/health")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"status":"ok","env":"test"}`))
		})

		It("expõe as métricas de cadastro", func() {
			Expect(app.postForm(janeForm(), nil).Code).To(Equal(http.StatusFound))

			w := app.get("/metrics")

			Expect(w.Code).To(Equal(http.StatusOK))
			body, err := io.ReadAll(w.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring(`unusualpills_signup_submissions_total{outcome="created"} 1`))
		})

		It("devolve 404 em problem+json", func() {
			w := app.get("/nope")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix(problemJSON))
			Expect(decodeProblem(w)["status"]).To(BeEquivalentTo(http.StatusNotFound))
		})
	})
})
