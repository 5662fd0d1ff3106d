package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type AirportRepository interface {
	ListAirports(ctx context.Context, countryCode string) ([]domain.Airport, error)
	GetAirport(ctx context.Context, code string) (*domain.Airport, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetAirline(ctx context.Context, id int64) (*domain.Airline, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) ListAirports(ctx context.Context, countryCode string) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, location, country_code, terminals FROM airports
		WHERE ($1 = '' OR country_code = $1) ORDER BY code`, countryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.Location, &a.CountryCode, &a.Terminals); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT code, name, location, country_code, terminals FROM airports WHERE code=$1`, code)
	var a domain.Airport
	if err := row.Scan(&a.Code, &a.Name, &a.Location, &a.CountryCode, &a.Terminals); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, continent, official_language, is_schengen_member FROM countries ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Code, &c.Name, &c.Continent, &c.OfficialLanguage, &c.SchengenMember); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *PGAirportRepository) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, iata_code, icao_code, headquarters, year_founded, base_airport_code FROM airlines WHERE id=$1`, id)
	var a domain.Airline
	if err := row.Scan(&a.ID, &a.Name, &a.IATACode, &a.ICAOCode, &a.Headquarters, &a.YearFounded, &a.BaseAirportCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, iata_code, icao_code, headquarters, year_founded, base_airport_code FROM airlines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.IATACode, &a.ICAOCode, &a.Headquarters, &a.YearFounded, &a.BaseAirportCode); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

var _ AirportRepository = (*PGAirportRepository)(nil)
