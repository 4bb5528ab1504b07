package service

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jengzang/flightarcs-backend-go/internal/database"
	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
)

type fixture struct {
	db       *sql.DB
	auth     *AuthService
	airports *AirportService
	trips    *TripService
	maps     *MapService
	cache    *GeometryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	users := repository.NewUserRepository(conn)
	airportRepo := repository.NewAirportRepository(conn)
	builder, err := flightpath.NewBuilder(flightpath.DefaultConfig())
	require.NoError(t, err)

	f := &fixture{db: conn, cache: NewGeometryCache(16, time.Minute)}
	f.auth = NewAuthService(users, "test-secret", time.Hour)
	f.auth.cost = bcrypt.MinCost
	f.airports = NewAirportService(airportRepo)
	require.NoError(t, f.airports.EnsureSeeded())
	f.trips = NewTripService(repository.NewTripRepository(conn), airportRepo, builder, f.cache, DefaultKgCO2PerKm)
	f.maps = NewMapService(f.trips, users)
	return f
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	u, err := f.auth.Register(models.Credentials{Username: name, Password: "correct horse"})
	require.NoError(t, err)
	return u.ID
}

func TestAuthService_RegisterLogin(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "alice")

	_, err := f.auth.Register(models.Credentials{Username: "alice", Password: "another one"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	tok, err := f.auth.Login(models.Credentials{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, id, tok.UserID)

	got, err := f.auth.ParseToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = f.auth.Login(models.Credentials{Username: "alice", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(models.Credentials{Username: "nobody", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Rejects(t *testing.T) {
	secret := []byte("k")
	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Subject:   "7",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	id, err := ParseToken(secret, sign(valid, jwt.SigningMethodHS256, secret))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	badSubject := valid
	badSubject.Subject = "abc"

	tests := map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": sign(valid, jwt.SigningMethodHS256, []byte("other")),
		"wrong method": sign(valid, jwt.SigningMethodHS512, secret),
		"expired":      sign(expired, jwt.SigningMethodHS256, secret),
		"no expiry":    sign(noExpiry, jwt.SigningMethodHS256, secret),
		"bad subject":  sign(badSubject, jwt.SigningMethodHS256, secret),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(secret, tok)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestTripService_CreateAndSummary(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "bob")

	lhrJfk, err := f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "lhr", Destination: "JFK"})
	require.NoError(t, err)
	assert.Equal(t, "LHR", lhrJfk.OriginCode)
	assert.InDelta(t, 5540, lhrJfk.DistanceKm, 1)
	assert.InDelta(t, lhrJfk.DistanceKm*0.115, lhrJfk.EmissionsKg, 1e-9)

	_, err = f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "HND", Destination: "LAX"})
	require.NoError(t, err)

	_, err = f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "ZZZ", Destination: "LAX"})
	assert.ErrorIs(t, err, ErrUnknownAirport)

	summary, err := f.trips.GetSummary(uid)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TripCount)
	assert.Equal(t, 1, summary.AntimeridianTrips)
	assert.InDelta(t, summary.TotalDistanceKm*0.115, summary.TotalEmissionsKg, 1e-6)
	assert.Contains(t, summary.TotalEmissionsText, "kg CO₂")

	empty, err := f.trips.GetSummary(f.user(t, "carol"))
	require.NoError(t, err)
	assert.Zero(t, empty.TripCount)
	assert.Zero(t, empty.P90EmissionsKg)
}

func TestTripService_GeometryCache(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "dave")

	trip, err := f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "HND", Destination: "SFO"})
	require.NoError(t, err)

	g1, err := f.trips.GetTripGeometry(uid, trip.ID)
	require.NoError(t, err)
	assert.True(t, g1.CrossesAntimeridian)
	assert.Equal(t, 1, f.cache.Len())

	g2, err := f.trips.GetTripGeometry(uid, trip.ID)
	require.NoError(t, err)
	assert.Same(t, g1, g2)

	// Other users cannot see it
	_, err = f.trips.GetTripGeometry(f.user(t, "eve"), trip.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, f.trips.DeleteTrip(uid, trip.ID))
	assert.Equal(t, 0, f.cache.Len())
	assert.ErrorIs(t, f.trips.DeleteTrip(uid, trip.ID), repository.ErrNotFound)
}

func TestTripService_GetAllGeometriesSkipsBadRows(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "frank")

	_, err := f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "SFO", Destination: "JFK"})
	require.NoError(t, err)
	_, err = f.db.Exec(`INSERT INTO trips (user_id, origin_code, origin_lat, origin_lon, dest_code, dest_lat, dest_lon, distance_km, emissions_kg)
		VALUES (?, 'BAD', 120, 0, 'JFK', 40.6, -73.7, 0, 0)`, uid)
	require.NoError(t, err)

	geometries, err := f.trips.GetAllGeometries(uid)
	require.NoError(t, err)
	require.Len(t, geometries, 1)
}

func TestMapService_Layers(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "grace")

	a, err := f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "LHR", Destination: "JFK"})
	require.NoError(t, err)
	b, err := f.trips.CreateTrip(uid, models.CreateTripRequest{Origin: "SYD", Destination: "AKL"})
	require.NoError(t, err)

	fc, err := f.maps.GeoJSON(uid, nil)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 30)

	_, err = f.maps.SaveLayers(uid, []int64{b.ID, b.ID})
	require.NoError(t, err)
	layers, err := f.maps.GetLayers(uid)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, layers.Hidden())

	fc, err = f.maps.GeoJSON(uid, nil)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 15)

	paths, err := f.maps.Polylines(uid, []int64{a.ID}, 0)
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.NotNil(t, paths)

	var buf bytes.Buffer
	require.NoError(t, f.maps.WriteKML(&buf, uid, nil))
	assert.Contains(t, buf.String(), "LHR → JFK")
	assert.NotContains(t, buf.String(), "SYD → AKL")
}

func TestMapService_CorruptSavedFilters(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "heidi")
	_, err := f.db.Exec("UPDATE users SET saved_filters = '{' WHERE id = ?", uid)
	require.NoError(t, err)

	layers, err := f.maps.GetLayers(uid)
	require.NoError(t, err)
	assert.Empty(t, layers.Hidden())
}

func TestAirportService_ImportReplace(t *testing.T) {
	f := newFixture(t)

	n, err := f.airports.Import([]models.Airport{
		{IATA: "MCE", Name: "Merced", Latitude: 37.28, Longitude: -120.51},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := f.airports.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Already populated, seeding is a no-op
	require.NoError(t, f.airports.EnsureSeeded())
	count, err = f.airports.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
