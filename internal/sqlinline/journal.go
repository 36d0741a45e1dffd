package sqlinline

const QInsertConsumption = `--sql f7ff25af-64df-497b-834e-7c67f0ead961
insert into consumption(
  barcode,
  product_name,
  quantity,
  unit,
  nutriscore,
  energy_kcal_100g,
  proteins_100g,
  carbohydrates_100g,
  fat_100g,
  consumed_at
) values (
  $1::text,
  $2::text,
  $3::double precision,
  $4::text,
  nullif($5::text, ''),
  $6::double precision,
  $7::double precision,
  $8::double precision,
  $9::double precision,
  $10::timestamptz
) returning id;
`

const QListConsumptionBetween = `--sql 855088dd-181d-47b7-8744-6d0a357ee528
select
  id,
  barcode,
  product_name,
  quantity,
  unit,
  coalesce(nutriscore, ''),
  energy_kcal_100g,
  proteins_100g,
  carbohydrates_100g,
  fat_100g,
  consumed_at
from consumption
where consumed_at >= $1::timestamptz
  and consumed_at < $2::timestamptz
order by consumed_at asc, id asc;
`

const QListConsumptionSince = `--sql 55b3d6d9-a231-4528-80c8-af97e8b2164a
select
  id,
  barcode,
  product_name,
  quantity,
  unit,
  coalesce(nutriscore, ''),
  energy_kcal_100g,
  proteins_100g,
  carbohydrates_100g,
  fat_100g,
  consumed_at
from consumption
where consumed_at >= $1::timestamptz
order by consumed_at asc, id asc;
`

const QDeleteConsumption = `--sql faa2bdc9-bd9a-4728-bf11-90481b4d7678
delete from consumption
where id = $1::bigint
returning consumed_at;
`

const QDeleteConsumptionBetween = `--sql 8a8088c8-266b-44a9-8320-7dbb907c35db
delete from consumption
where consumed_at >= $1::timestamptz
  and consumed_at < $2::timestamptz;
`
