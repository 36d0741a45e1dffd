package sqlinline

const QSelectSetting = `--sql 9818ad88-a676-46cb-b715-f130888c9f33
select value
from user_settings
where key = $1::text
limit 1;
`

const QUpsertSetting = `--sql a2e9ec77-9213-4c61-b7e1-2c4bc9defc00
insert into user_settings(key, value, updated_at)
values ($1::text, $2::text, now())
on conflict (key) do update set
  value = excluded.value,
  updated_at = now();
`
